package types

import "errors"

// Category is a named, rendered grouping of search results. Immutable once
// registered; results reference it by id.
type Category struct {
	// ID is unique within a channel.
	ID string `msgpack:"id" json:"id"`
	// Title is the category's display title.
	Title string `msgpack:"title" json:"title"`
	// Icon is an icon reference, possibly empty.
	Icon string `msgpack:"icon,omitempty" json:"icon,omitempty"`
	// Template is the renderer template as JSON text. Empty selects the
	// consumer's default template.
	Template string `msgpack:"template,omitempty" json:"template,omitempty"`
}

// ErrEmptyDepartmentLabel is returned for department nodes without a label.
var ErrEmptyDepartmentLabel = errors.New("department label must not be empty")

// Department is one node of the navigable facet tree. A channel registers at
// most one tree, as a single opaque unit.
type Department struct {
	// ID identifies the department; empty is allowed for the root.
	ID string `msgpack:"id" json:"id"`
	// Label is the display label.
	Label string `msgpack:"label" json:"label"`
	// Subdepartments are the child nodes, in display order.
	Subdepartments []*Department `msgpack:"subdepartments,omitempty" json:"subdepartments,omitempty"`
}

// NewDepartment creates a department node.
func NewDepartment(id, label string) *Department {
	return &Department{ID: id, Label: label}
}

// AddSubdepartment appends a child node.
func (d *Department) AddSubdepartment(child *Department) {
	d.Subdepartments = append(d.Subdepartments, child)
}

// Validate checks the whole tree for renderable labels.
func (d *Department) Validate() error {
	if d.Label == "" {
		return ErrEmptyDepartmentLabel
	}
	for _, child := range d.Subdepartments {
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}
