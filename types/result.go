package types

import (
	"errors"

	"github.com/pellucid-io/scopes/variant"
)

// Attribute names with dedicated fields on CategorisedResult. Setting one of
// these through Set routes to the field rather than the attribute map.
const (
	AttrTitle  = "title"
	AttrURI    = "uri"
	AttrArt    = "art"
	AttrDndURI = "dnd_uri"
)

// ErrMissingCategory is returned when a result carries no category id.
var ErrMissingCategory = errors.New("result has no category id")

// CategorisedResult is one search result tagged with the display category it
// belongs to. The category id is a weak reference, resolved by the consumer
// at render time.
type CategorisedResult struct {
	// CategoryID references a category registered on the same channel.
	CategoryID string `msgpack:"category_id" json:"category_id"`
	// Title is the result's display title.
	Title string `msgpack:"title" json:"title"`
	// URI is the canonical link for the result.
	URI string `msgpack:"uri" json:"uri"`
	// Art is an image reference for the result.
	Art string `msgpack:"art,omitempty" json:"art,omitempty"`
	// DndURI is the drag-and-drop URI, if different from URI.
	DndURI string `msgpack:"dnd_uri,omitempty" json:"dnd_uri,omitempty"`
	// Attrs holds any further renderer-mapped attributes.
	Attrs map[string]variant.Value `msgpack:"attrs,omitempty" json:"attrs,omitempty"`
}

// NewCategorisedResult creates an empty result in the given category.
func NewCategorisedResult(category *Category) *CategorisedResult {
	id := ""
	if category != nil {
		id = category.ID
	}
	return &CategorisedResult{CategoryID: id}
}

// Set assigns a named attribute. The reserved names title, uri, art and
// dnd_uri route to their fields; everything else lands in Attrs. Values
// with no wire representation fail.
func (r *CategorisedResult) Set(key string, value any) error {
	v, err := variant.FromAny(value)
	if err != nil {
		return err
	}
	switch key {
	case AttrTitle, AttrURI, AttrArt, AttrDndURI:
		s, ok := v.AsString()
		if !ok {
			return errors.New(key + " must be a string")
		}
		switch key {
		case AttrTitle:
			r.Title = s
		case AttrURI:
			r.URI = s
		case AttrArt:
			r.Art = s
		case AttrDndURI:
			r.DndURI = s
		}
		return nil
	}
	if r.Attrs == nil {
		r.Attrs = make(map[string]variant.Value)
	}
	r.Attrs[key] = v
	return nil
}

// Get returns a named attribute, checking the reserved fields first.
func (r *CategorisedResult) Get(key string) (variant.Value, bool) {
	switch key {
	case AttrTitle:
		return variant.String(r.Title), true
	case AttrURI:
		return variant.String(r.URI), true
	case AttrArt:
		if r.Art == "" {
			break
		}
		return variant.String(r.Art), true
	case AttrDndURI:
		if r.DndURI == "" {
			break
		}
		return variant.String(r.DndURI), true
	}
	v, ok := r.Attrs[key]
	return v, ok
}

// Validate checks that the result can go on the wire.
func (r *CategorisedResult) Validate() error {
	if r.CategoryID == "" {
		return ErrMissingCategory
	}
	return nil
}
