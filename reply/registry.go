package reply

import (
	"github.com/pellucid-io/scopes/types"
	"github.com/pellucid-io/scopes/variant"
)

// categoryRegistry tracks the categories and department tree registered on
// one search channel. Guarded by the owning channel's mu.
type categoryRegistry struct {
	categories  map[string]*types.Category
	departments bool
}

func newCategoryRegistry() *categoryRegistry {
	return &categoryRegistry{categories: make(map[string]*types.Category)}
}

func (r *categoryRegistry) has(id string) bool {
	_, ok := r.categories[id]
	return ok
}

func (r *categoryRegistry) add(cat *types.Category) {
	r.categories[cat.ID] = cat
}

// validateTemplate checks a renderer template. The empty template is valid
// and selects the consumer's default renderer; anything else must parse as
// a JSON object.
func validateTemplate(template string) error {
	if template == "" {
		return nil
	}
	_, err := variant.DecodeJSONDict([]byte(template))
	return err
}
