package filters

import "github.com/pellucid-io/scopes/variant"

// State is a filter-state snapshot: filter id to selected value(s).
//
// The wire format does not require state keys to match registered filter
// ids; consumers ignore entries they cannot resolve.
type State map[string]variant.Value

// NewState creates an empty snapshot.
func NewState() State {
	return make(State)
}

// Serialize renders the snapshot as a variant dict.
func (s State) Serialize() variant.Value {
	entries := make(map[string]variant.Value, len(s))
	for k, v := range s {
		entries[k] = v
	}
	return variant.Dict(entries)
}

// selectedOptions returns the option ids currently selected for a filter.
func (s State) selectedOptions(filterID string) []string {
	v, ok := s[filterID]
	if !ok {
		return nil
	}
	arr, ok := v.AsArray()
	if !ok {
		// State not in the expected shape; treat as empty.
		return nil
	}
	ids := make([]string, 0, len(arr))
	for _, e := range arr {
		if id, ok := e.AsString(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s State) setSelectedOptions(filterID string, ids []string) {
	elems := make([]variant.Value, len(ids))
	for i, id := range ids {
		elems[i] = variant.String(id)
	}
	s[filterID] = variant.Array(elems...)
}
