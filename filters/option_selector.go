package filters

import "github.com/pellucid-io/scopes/variant"

// FilterTypeOptionSelector is the wire name of the option selector filter.
const FilterTypeOptionSelector = "option_selector"

// OptionSelectorFilter is a list of options, selectable one at a time or
// several at once depending on MultiSelect.
type OptionSelectorFilter struct {
	filterWithOptions
	Label       string
	MultiSelect bool
}

// NewOptionSelectorFilter creates a new option selector filter.
func NewOptionSelectorFilter(id, label string, multiSelect bool) *OptionSelectorFilter {
	return &OptionSelectorFilter{
		filterWithOptions: filterWithOptions{
			filterBase: filterBase{
				id:         id,
				filterType: FilterTypeOptionSelector,
			},
		},
		Label:       label,
		MultiSelect: multiSelect,
	}
}

// UpdateState sets or clears an option in the filter state. In single-select
// mode an activation replaces any previous selection.
func (f *OptionSelectorFilter) UpdateState(state State, optionID string, active bool) error {
	if !f.isValidOption(optionID) {
		return unknownOption(f.id, optionID)
	}

	selected := state.selectedOptions(f.id)

	if active {
		if f.MultiSelect {
			for _, id := range selected {
				if id == optionID {
					state.setSelectedOptions(f.id, selected)
					return nil
				}
			}
			selected = append(selected, optionID)
		} else {
			selected = []string{optionID}
		}
	} else {
		kept := selected[:0]
		for _, id := range selected {
			if id != optionID {
				kept = append(kept, id)
			}
		}
		selected = kept
	}

	state.setSelectedOptions(f.id, selected)
	return nil
}

// Serialize implements Filter.
func (f *OptionSelectorFilter) Serialize() variant.Value {
	v := f.serialize()
	v["label"] = variant.String(f.Label)
	v["multi_select"] = variant.Bool(f.MultiSelect)
	v["options"] = f.serializeOptions()
	return variant.Dict(v)
}

var _ Filter = (*OptionSelectorFilter)(nil)
