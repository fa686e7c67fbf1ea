package filters

import "github.com/pellucid-io/scopes/variant"

// FilterTypeRadioButtons is the wire name of the radio buttons filter.
const FilterTypeRadioButtons = "radio_buttons"

// RadioButtonsFilter displays a mutually exclusive list of options.
type RadioButtonsFilter struct {
	filterWithOptions
	Label string
}

// NewRadioButtonsFilter creates a new radio buttons filter.
func NewRadioButtonsFilter(id, label string) *RadioButtonsFilter {
	return &RadioButtonsFilter{
		filterWithOptions: filterWithOptions{
			filterBase: filterBase{
				id:         id,
				filterType: FilterTypeRadioButtons,
			},
		},
		Label: label,
	}
}

// UpdateState updates the value of a particular option in the filter state.
// At most one option is selected at a time; deactivating the selected option
// clears the state.
func (f *RadioButtonsFilter) UpdateState(state State, optionID string, active bool) error {
	if !f.isValidOption(optionID) {
		return unknownOption(f.id, optionID)
	}

	selected := state.selectedOptions(f.id)

	if active {
		selected = []string{optionID}
	} else if len(selected) > 0 && selected[0] == optionID {
		selected = nil
	}

	state.setSelectedOptions(f.id, selected)
	return nil
}

// Serialize implements Filter.
func (f *RadioButtonsFilter) Serialize() variant.Value {
	v := f.serialize()
	v["label"] = variant.String(f.Label)
	v["options"] = f.serializeOptions()
	return variant.Dict(v)
}

var _ Filter = (*RadioButtonsFilter)(nil)
