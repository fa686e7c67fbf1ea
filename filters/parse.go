package filters

import (
	"github.com/pellucid-io/scopes/variant"
)

// RawFilter is a filter of a type this module has no dedicated struct for.
// It round-trips its definition dict unmodified so unknown filter types can
// cross the boundary intact.
type RawFilter struct {
	id   string
	dict variant.Value
}

// ID implements Filter.
func (f *RawFilter) ID() string { return f.id }

// Serialize implements Filter.
func (f *RawFilter) Serialize() variant.Value { return f.dict }

var _ Filter = (*RawFilter)(nil)

// Parse deserializes a JSON filter-definition array.
//
// Every element must be an object with non-empty string "id" and
// "filter_type" members; known filter types come back as their typed
// structs, unknown ones as RawFilter. Malformed input fails with a
// DeserializationError describing the offending fragment.
func Parse(data []byte) ([]Filter, error) {
	arr, err := variant.DecodeJSONArray(data)
	if err != nil {
		return nil, err
	}
	elems, _ := arr.AsArray()

	defs := make([]Filter, 0, len(elems))
	for _, elem := range elems {
		f, err := deserializeFilter(elem)
		if err != nil {
			return nil, err
		}
		defs = append(defs, f)
	}
	return defs, nil
}

// ParseState deserializes a JSON filter-state object. Keys are filter ids;
// values are whatever the filter type stores. Keys are not checked against
// any filter list.
func ParseState(data []byte) (State, error) {
	dict, err := variant.DecodeJSONDict(data)
	if err != nil {
		return nil, err
	}
	entries, _ := dict.AsDict()

	state := make(State, len(entries))
	for k, v := range entries {
		state[k] = v
	}
	return state, nil
}

func deserializeFilter(elem variant.Value) (Filter, error) {
	if elem.Kind() != variant.KindDict {
		return nil, &variant.DeserializationError{
			Fragment: "filter definition " + elem.String(),
			Err:      errFilterNotADict,
		}
	}
	id, ok := stringMember(elem, "id")
	if !ok {
		return nil, &variant.DeserializationError{
			Fragment: "filter definition " + elem.String(),
			Err:      errFilterMissingID,
		}
	}
	filterType, ok := stringMember(elem, "filter_type")
	if !ok {
		return nil, &variant.DeserializationError{
			Fragment: "filter definition " + elem.String(),
			Err:      errFilterMissingType,
		}
	}

	switch filterType {
	case FilterTypeOptionSelector:
		f := NewOptionSelectorFilter(id, optionalString(elem, "label"), boolMember(elem, "multi_select"))
		f.SetDisplayHints(hints(elem))
		addParsedOptions(&f.filterWithOptions, elem)
		return f, nil
	case FilterTypeRadioButtons:
		f := NewRadioButtonsFilter(id, optionalString(elem, "label"))
		f.SetDisplayHints(hints(elem))
		addParsedOptions(&f.filterWithOptions, elem)
		return f, nil
	case FilterTypeRangeInput:
		f := NewRangeInputFilter(id,
			optionalString(elem, "start_label"),
			optionalString(elem, "end_label"),
			optionalString(elem, "unit_label"))
		f.SetDisplayHints(hints(elem))
		if v, ok := elem.Get("default_start_value"); ok {
			if d, ok := v.AsDouble(); ok {
				f.DefaultStart = &d
			}
		}
		if v, ok := elem.Get("default_end_value"); ok {
			if d, ok := v.AsDouble(); ok {
				f.DefaultEnd = &d
			}
		}
		return f, nil
	default:
		return &RawFilter{id: id, dict: elem}, nil
	}
}

type filterShapeError string

func (e filterShapeError) Error() string { return string(e) }

var (
	errFilterNotADict    = filterShapeError("filter definition must be an object")
	errFilterMissingID   = filterShapeError(`filter definition needs a non-empty "id"`)
	errFilterMissingType = filterShapeError(`filter definition needs a non-empty "filter_type"`)
)

func stringMember(dict variant.Value, key string) (string, bool) {
	v, ok := dict.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.AsString()
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func optionalString(dict variant.Value, key string) string {
	s, _ := stringMember(dict, key)
	return s
}

func boolMember(dict variant.Value, key string) bool {
	v, ok := dict.Get(key)
	if !ok {
		return false
	}
	b, _ := v.AsBool()
	return b
}

func hints(dict variant.Value) DisplayHints {
	v, ok := dict.Get("display_hints")
	if !ok {
		return DisplayDefault
	}
	i, _ := v.AsInt()
	return DisplayHints(i)
}

func addParsedOptions(f *filterWithOptions, dict variant.Value) {
	v, ok := dict.Get("options")
	if !ok {
		return
	}
	arr, ok := v.AsArray()
	if !ok {
		return
	}
	for _, o := range arr {
		id := optionalString(o, "id")
		if id == "" {
			continue
		}
		f.AddOption(id, optionalString(o, "label"))
	}
}
