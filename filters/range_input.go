package filters

import "github.com/pellucid-io/scopes/variant"

// FilterTypeRangeInput is the wire name of the range input filter.
const FilterTypeRangeInput = "range_input"

// RangeInputFilter lets the user enter a numeric start/end range. Either
// bound may be left open.
type RangeInputFilter struct {
	filterBase
	StartLabel   string
	EndLabel     string
	UnitLabel    string
	DefaultStart *float64
	DefaultEnd   *float64
}

// NewRangeInputFilter creates a new range input filter.
func NewRangeInputFilter(id, startLabel, endLabel, unitLabel string) *RangeInputFilter {
	return &RangeInputFilter{
		filterBase: filterBase{
			id:         id,
			filterType: FilterTypeRangeInput,
		},
		StartLabel: startLabel,
		EndLabel:   endLabel,
		UnitLabel:  unitLabel,
	}
}

// UpdateState records the entered range. A nil bound is open.
func (f *RangeInputFilter) UpdateState(state State, start, end *float64) {
	bound := func(p *float64) variant.Value {
		if p == nil {
			return variant.Null()
		}
		return variant.Double(*p)
	}
	state[f.id] = variant.Array(bound(start), bound(end))
}

// Serialize implements Filter.
func (f *RangeInputFilter) Serialize() variant.Value {
	v := f.serialize()
	v["start_label"] = variant.String(f.StartLabel)
	v["end_label"] = variant.String(f.EndLabel)
	v["unit_label"] = variant.String(f.UnitLabel)
	if f.DefaultStart != nil {
		v["default_start_value"] = variant.Double(*f.DefaultStart)
	}
	if f.DefaultEnd != nil {
		v["default_end_value"] = variant.Double(*f.DefaultEnd)
	}
	return variant.Dict(v)
}

var _ Filter = (*RangeInputFilter)(nil)
