package reply

import (
	"github.com/pellucid-io/scopes/filters"
	"github.com/pellucid-io/scopes/types"
)

// SearchReply streams search results, categories, departments and filter
// state to the consumer of one search query.
//
// All pushes are synchronous: when a method returns nil the event has been
// handed to the sink. A single producing goroutine is assumed per channel.
type SearchReply struct {
	*channel
	registry *categoryRegistry
}

// NewSearchReply creates a search reply channel over the given sink.
func NewSearchReply(sink Sink, cfg Config) *SearchReply {
	return &SearchReply{
		channel:  newChannel(types.ChannelKindSearch, sink, cfg),
		registry: newCategoryRegistry(),
	}
}

// RegisterCategory registers a results category and announces it to the
// consumer. The returned category is used to construct categorised results.
//
// The template is either empty (consumer default renderer) or a JSON
// renderer template object. Registering an id twice fails with
// ErrDuplicateCategory; the first registration remains valid.
func (r *SearchReply) RegisterCategory(id, title, icon, template string) (*types.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateOpen {
		return nil, closedErr(r.id, "register_category")
	}
	if r.registry.has(id) {
		return nil, duplicateCategoryErr(r.id, id)
	}
	if err := validateTemplate(template); err != nil {
		return nil, encodingErr(r.id, "register_category", err)
	}

	cat := &types.Category{ID: id, Title: title, Icon: icon, Template: template}
	if err := r.send("register_category", &types.ReplyEvent{
		Type:     types.EventTypeCategory,
		Category: cat,
	}); err != nil {
		return nil, err
	}
	r.registry.add(cat)
	r.stats.categories++
	return cat, nil
}

// RegisterDepartments registers the channel's department tree, as a single
// opaque unit. At most one tree may be registered per channel.
func (r *SearchReply) RegisterDepartments(root *types.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateOpen {
		return closedErr(r.id, "register_departments")
	}
	if r.registry.departments {
		return &ChannelError{
			Kind:    ErrDepartmentsRegistered,
			Op:      "register_departments",
			Channel: r.id,
		}
	}
	if err := root.Validate(); err != nil {
		return encodingErr(r.id, "register_departments", err)
	}

	if err := r.send("register_departments", &types.ReplyEvent{
		Type:        types.EventTypeDepartments,
		Departments: root,
	}); err != nil {
		return err
	}
	r.registry.departments = true
	return nil
}

// Push transmits one categorised result. The result's category must have
// been registered on this channel; a dangling reference fails with
// ErrEncoding before anything reaches the wire.
func (r *SearchReply) Push(result *types.CategorisedResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateOpen {
		return closedErr(r.id, "push")
	}
	if err := result.Validate(); err != nil {
		return encodingErr(r.id, "push", err)
	}
	if !r.registry.has(result.CategoryID) {
		return encodingErr(r.id, "push", unknownCategoryError(result.CategoryID))
	}

	if err := r.send("push", &types.ReplyEvent{
		Type:   types.EventTypeResult,
		Result: result,
	}); err != nil {
		return err
	}
	r.stats.results++
	return nil
}

// PushFilters transmits filter definitions together with a filter-state
// snapshot, as one atomic event. State keys are not validated against the
// definitions; the wire format is deliberately permissive there.
func (r *SearchReply) PushFilters(defs []filters.Filter, state filters.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateOpen {
		return closedErr(r.id, "push_filters")
	}

	if err := r.send("push_filters", &types.ReplyEvent{
		Type: types.EventTypeFilters,
		Filters: &types.FilterPush{
			Filters: filters.Serialize(defs),
			State:   state.Serialize(),
		},
	}); err != nil {
		return err
	}
	r.stats.filterPushes++
	return nil
}

// PushFiltersJSON is the boundary-side variant of PushFilters: both
// payloads arrive as JSON text and are validated before transmission.
func (r *SearchReply) PushFiltersJSON(defsJSON, stateJSON []byte) error {
	defs, err := filters.Parse(defsJSON)
	if err != nil {
		return encodingErr(r.id, "push_filters", err)
	}
	state, err := filters.ParseState(stateJSON)
	if err != nil {
		return encodingErr(r.id, "push_filters", err)
	}
	return r.PushFilters(defs, state)
}

type unknownCategoryError string

func (e unknownCategoryError) Error() string {
	return `result references unregistered category "` + string(e) + `"`
}
