// Package filters defines the declarative filter model a search channel
// pushes alongside results.
//
// A Filter serializes to a variant dict (externally: a JSON object) with at
// least "id" and "filter_type" keys. FilterState maps filter ids to the
// currently selected values. Definitions and state travel together in one
// atomic push; state keys are deliberately not validated against filter ids.
package filters

import (
	"errors"
	"fmt"

	"github.com/pellucid-io/scopes/variant"
)

// DisplayHints controls filter presentation.
type DisplayHints int64

// Display hint values.
const (
	DisplayDefault DisplayHints = 0
	DisplayPrimary DisplayHints = 1
)

// Filter is a declarative filter definition.
type Filter interface {
	// ID returns the filter id referenced by FilterState entries.
	ID() string
	// Serialize renders the definition as a variant dict.
	Serialize() variant.Value
}

// ErrUnknownOption is returned when a state update names an option the
// filter does not define.
var ErrUnknownOption = errors.New("unknown option id")

// filterBase carries the fields every filter serializes.
type filterBase struct {
	id           string
	filterType   string
	displayHints DisplayHints
}

func (f *filterBase) ID() string { return f.id }

// SetDisplayHints overrides the filter's display hints.
func (f *filterBase) SetDisplayHints(hints DisplayHints) {
	f.displayHints = hints
}

func (f *filterBase) serialize() map[string]variant.Value {
	return map[string]variant.Value{
		"id":            variant.String(f.id),
		"filter_type":   variant.String(f.filterType),
		"display_hints": variant.Int(int64(f.displayHints)),
	}
}

// Option is one selectable entry of an option-based filter.
type Option struct {
	ID    string
	Label string
}

// filterWithOptions extends filterBase with a fixed option list.
type filterWithOptions struct {
	filterBase
	options []Option
}

// AddOption appends a selectable option.
func (f *filterWithOptions) AddOption(id, label string) {
	f.options = append(f.options, Option{ID: id, Label: label})
}

// Options returns the option list in declaration order.
func (f *filterWithOptions) Options() []Option {
	return f.options
}

func (f *filterWithOptions) isValidOption(id string) bool {
	for _, o := range f.options {
		if o.ID == id {
			return true
		}
	}
	return false
}

func (f *filterWithOptions) serializeOptions() variant.Value {
	elems := make([]variant.Value, len(f.options))
	for i, o := range f.options {
		elems[i] = variant.Dict(map[string]variant.Value{
			"id":    variant.String(o.ID),
			"label": variant.String(o.Label),
		})
	}
	return variant.Array(elems...)
}

func unknownOption(filterID, optionID string) error {
	return fmt.Errorf("filter %q: %w: %q", filterID, ErrUnknownOption, optionID)
}

// Serialize renders an ordered filter list as a variant array, the shape
// carried by a filters push.
func Serialize(defs []Filter) variant.Value {
	elems := make([]variant.Value, len(defs))
	for i, f := range defs {
		elems[i] = f.Serialize()
	}
	return variant.Array(elems...)
}
