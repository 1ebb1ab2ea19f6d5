// Package schema describes the props shape of registered components and
// locates the field that receives a tag's bare children.
package schema

import "github.com/goliatone/go-richtext/markup"

// FieldKind enumerates the field variants a component schema may use.
type FieldKind string

const (
	KindScalar      FieldKind = "scalar"
	KindObject      FieldKind = "object"
	KindChild       FieldKind = "child"
	KindArray       FieldKind = "array"
	KindConditional FieldKind = "conditional"
)

// ChildKind selects whether an embedded child field holds block or inline
// rich text.
type ChildKind string

const (
	ChildBlock  ChildKind = "block"
	ChildInline ChildKind = "inline"
)

// Field is one node of a component props schema.
type Field struct {
	Kind  FieldKind `json:"kind"`
	Label string    `json:"label,omitempty"`

	// object
	Fields map[string]*Field `json:"fields,omitempty"`

	// child
	ChildKind ChildKind `json:"childKind,omitempty"`

	// array
	Element    *Field `json:"element,omitempty"`
	AsChildTag string `json:"asChildTag,omitempty"`

	// conditional
	Discriminant *Field           `json:"discriminant,omitempty"`
	Values       map[string]*Field `json:"values,omitempty"`

	Default any `json:"default,omitempty"`
}

// Scalar declares a plain value field.
func Scalar(label string) *Field {
	return &Field{Kind: KindScalar, Label: label}
}

// Object declares a nested object of fields.
func Object(fields map[string]*Field) *Field {
	return &Field{Kind: KindObject, Fields: fields}
}

// Child declares a rich text field embedded as a prop reference.
func Child(kind ChildKind) *Field {
	return &Field{Kind: KindChild, ChildKind: kind}
}

// Array declares a repeated field. A non-empty asChildTag lets each element
// be written as a nested tag of that name.
func Array(element *Field, asChildTag string) *Field {
	return &Field{Kind: KindArray, Element: element, AsChildTag: asChildTag}
}

// Conditional declares a field whose shape depends on a discriminant.
func Conditional(discriminant *Field, values map[string]*Field) *Field {
	return &Field{Kind: KindConditional, Discriminant: discriminant, Values: values}
}

// Component is a registered custom tag and the schema of its props.
type Component struct {
	Name   string            `json:"name"`
	Label  string            `json:"label,omitempty"`
	Schema map[string]*Field `json:"schema"`
	// PropsSchema is an optional JSON schema applied to the produced props.
	PropsSchema map[string]any `json:"propsSchema,omitempty"`
}

// Root returns the component schema as an object field.
func (c *Component) Root() *Field {
	if c == nil {
		return Object(nil)
	}
	return Object(c.Schema)
}

// Lookup resolves a tag name to its component definition.
type Lookup interface {
	Component(tag string) (*Component, bool)
}

// Components is a static Lookup keyed by tag name.
type Components map[string]*Component

// Component implements Lookup.
func (c Components) Component(tag string) (*Component, bool) {
	if c == nil || markup.IsReservedTag(tag) {
		return nil, false
	}
	component, ok := c[tag]
	return component, ok && component != nil
}
