package types

import (
	"github.com/pellucid-io/scopes/variant"
)

// PreviewWidget is an opaque layout descriptor in its serialized JSON form.
// The channel validates shape at push time; rendering is the consumer's job.
type PreviewWidget string

// MakeWidget builds a widget descriptor from an id, a widget type and extra
// layout attributes. The id and widget type become the descriptor's "id" and
// "type" keys.
func MakeWidget(id, widgetType string, attrs map[string]any) (PreviewWidget, error) {
	entries := make(map[string]variant.Value, len(attrs)+2)
	for k, a := range attrs {
		v, err := variant.FromAny(a)
		if err != nil {
			return "", err
		}
		entries[k] = v
	}
	entries["id"] = variant.String(id)
	entries["type"] = variant.String(widgetType)

	data, err := variant.Dict(entries).MarshalJSON()
	if err != nil {
		return "", err
	}
	return PreviewWidget(data), nil
}

// Attribute is one preview key/value pair. Pushing the same key twice is
// allowed; consumers apply last-write-wins.
type Attribute struct {
	// Key is the attribute name.
	Key string `msgpack:"key" json:"key"`
	// Value is the attribute payload.
	Value variant.Value `msgpack:"value" json:"value"`
}

// FilterPush is the atomic filters + filter-state payload. Both members are
// serialized variant trees: Filters an array of filter definition dicts,
// State a dict keyed by filter id.
type FilterPush struct {
	// Filters is the ordered filter definition array.
	Filters variant.Value `msgpack:"filters" json:"filters"`
	// State is the filter-state snapshot.
	State variant.Value `msgpack:"state" json:"state"`
}
