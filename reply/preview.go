package reply

import (
	"github.com/pellucid-io/scopes/types"
	"github.com/pellucid-io/scopes/variant"
)

// PreviewReply streams preview widgets and attributes to the consumer of
// one preview request.
type PreviewReply struct {
	*channel
}

// NewPreviewReply creates a preview reply channel over the given sink.
func NewPreviewReply(sink Sink, cfg Config) *PreviewReply {
	return &PreviewReply{
		channel: newChannel(types.ChannelKindPreview, sink, cfg),
	}
}

// PushWidgets transmits preview widgets in the given order; the order is
// the rendering order. Every descriptor must be a JSON object with
// non-empty "id" and "type" members, else the push fails with ErrEncoding
// and nothing reaches the wire.
func (r *PreviewReply) PushWidgets(widgets ...types.PreviewWidget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateOpen {
		return closedErr(r.id, "push_widgets")
	}
	for _, w := range widgets {
		if err := validateWidget(w); err != nil {
			return encodingErr(r.id, "push_widgets", err)
		}
	}

	if err := r.send("push_widgets", &types.ReplyEvent{
		Type:    types.EventTypeWidgets,
		Widgets: widgets,
	}); err != nil {
		return err
	}
	r.stats.widgets += int64(len(widgets))
	return nil
}

// PushAttr transmits one preview attribute. Pushing a key twice is allowed;
// the consumer applies last-write-wins.
//
// This augments the attributes available to widget mappings, so a widget
// can be sent early and filled in when the data arrives.
func (r *PreviewReply) PushAttr(key string, value any) error {
	v, err := variant.FromAny(value)
	if err != nil {
		return encodingErr(r.id, "push_attr", err)
	}
	return r.pushAttr(key, v)
}

// PushAttrJSON is the boundary-side variant of PushAttr: the value arrives
// as JSON text.
func (r *PreviewReply) PushAttrJSON(key string, valueJSON []byte) error {
	v, err := variant.DecodeJSON(valueJSON)
	if err != nil {
		return encodingErr(r.id, "push_attr", err)
	}
	return r.pushAttr(key, v)
}

func (r *PreviewReply) pushAttr(key string, v variant.Value) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateOpen {
		return closedErr(r.id, "push_attr")
	}

	if err := r.send("push_attr", &types.ReplyEvent{
		Type:      types.EventTypeAttribute,
		Attribute: &types.Attribute{Key: key, Value: v},
	}); err != nil {
		return err
	}
	r.stats.attributes++
	return nil
}

func validateWidget(w types.PreviewWidget) error {
	dict, err := variant.DecodeJSONDict([]byte(w))
	if err != nil {
		return err
	}
	for _, member := range []string{"id", "type"} {
		v, ok := dict.Get(member)
		if !ok {
			return &variant.DeserializationError{
				Fragment: "widget descriptor " + dict.String(),
				Err:      widgetShapeError(`missing "` + member + `"`),
			}
		}
		s, ok := v.AsString()
		if !ok || s == "" {
			return &variant.DeserializationError{
				Fragment: "widget descriptor " + dict.String(),
				Err:      widgetShapeError(`"` + member + `" must be a non-empty string`),
			}
		}
	}
	return nil
}

type widgetShapeError string

func (e widgetShapeError) Error() string { return string(e) }
