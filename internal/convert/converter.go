// Package convert turns a markup syntax tree into the editor document tree.
//
// Blocks and inline content are handled by two mutually recursive passes.
// Registered component tags whose schema designates a single child field are
// routed so that their children land at the right place of the props object.
package convert

import (
	"github.com/goliatone/go-richtext/document"
	"github.com/goliatone/go-richtext/internal/logging"
	"github.com/goliatone/go-richtext/markup"
	"github.com/goliatone/go-richtext/pkg/interfaces"
	"github.com/goliatone/go-richtext/schema"
)

// PropsValidator checks the props produced for a component block.
type PropsValidator interface {
	ValidateProps(component string, props map[string]any) error
}

// ChildFieldResolver is implemented by lookups that precompute the single
// child field of each component.
type ChildFieldResolver interface {
	SingleChildField(tag string) (*schema.ChildFieldPath, error)
}

// Option customises a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNestedLists keeps list children of a list item after its content
// instead of discarding everything but the first child.
func WithNestedLists(enabled bool) Option {
	return func(c *Converter) {
		c.nestedLists = enabled
	}
}

// WithPropsValidator validates the props of every component block produced.
func WithPropsValidator(validator PropsValidator) Option {
	return func(c *Converter) {
		c.validator = validator
	}
}

// Converter is immutable once built and safe for concurrent use.
type Converter struct {
	components  schema.Lookup
	logger      interfaces.Logger
	nestedLists bool
	validator   PropsValidator
}

// New builds a converter resolving custom tags through components, which
// may be nil when no components are registered.
func New(components schema.Lookup, opts ...Option) *Converter {
	if components == nil {
		components = schema.Components(nil)
	}
	c := &Converter{
		components: components,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Convert transforms a document root. The result is never empty and always
// ends with a paragraph. A root that is not a document node is converted as
// a single top-level block.
func (c *Converter) Convert(root *markup.Node) ([]*document.Node, error) {
	var nodes []*markup.Node
	switch {
	case root == nil:
	case root.Type == markup.KindDocument:
		nodes = root.Children
	default:
		nodes = []*markup.Node{root}
	}

	out, err := c.blocks(nodes, rootLocation)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 || out[len(out)-1].Type != document.TypeParagraph {
		out = append(out, document.EmptyParagraph())
	}
	return out, nil
}

// Blocks transforms a sequence of block level nodes.
func (c *Converter) Blocks(nodes []*markup.Node) ([]*document.Node, error) {
	return c.blocks(nodes, rootLocation)
}

// Inline transforms a sequence of inline nodes. The result always holds at
// least one entry.
func (c *Converter) Inline(nodes []*markup.Node) ([]*document.Node, error) {
	return c.inline(nodes, rootLocation)
}

// Convert is a shorthand for New(components).Convert(root).
func Convert(root *markup.Node, components schema.Lookup) ([]*document.Node, error) {
	return New(components).Convert(root)
}
