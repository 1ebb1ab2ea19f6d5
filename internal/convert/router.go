package convert

import (
	"github.com/goliatone/go-richtext/document"
	"github.com/goliatone/go-richtext/internal/values"
	"github.com/goliatone/go-richtext/markup"
	"github.com/goliatone/go-richtext/schema"
)

// route places children according to field. Child fields produce one
// embedded prop node. Array fields turn each child tag into an element
// object written into props, recursing into the element's own child field.
// props is owned by the caller and is the only value mutated.
func (c *Converter) route(children []*markup.Node, props map[string]any, field *schema.ChildFieldPath, parent document.PropPath, at location) ([]*document.Node, error) {
	switch field.Kind {
	case schema.KindChild:
		content, err := c.blocks(children, at)
		if err != nil {
			return nil, err
		}
		prop := document.NewElement(field.PropType(), content...)
		prop.PropPath = parent.Concat(field.RelativePath...)
		return []*document.Node{prop}, nil

	case schema.KindArray:
		return c.routeArray(children, props, field, parent, at)
	}
	return nil, nil
}

func (c *Converter) routeArray(children []*markup.Node, props map[string]any, field *schema.ChildFieldPath, parent document.PropPath, at location) ([]*document.Node, error) {
	elements := make([]any, 0, len(children))
	var embedded []*document.Node
	base := parent.Concat(field.RelativePath...)

	for idx, child := range children {
		childAt := at.child(idx)
		tag := unwrapParagraph(child)
		if tag == nil || tag.Type != markup.KindTag {
			found := child
			if tag != nil {
				found = tag
			}
			err := nodeError(ErrTagMismatch, found, childAt)
			err.Tag = ""
			err.Expected = field.AsChildTag
			return nil, err
		}
		if tag.Tag != field.AsChildTag {
			err := nodeError(ErrTagMismatch, tag, childAt)
			err.Expected = field.AsChildTag
			return nil, err
		}

		element := values.CloneMap(tag.Attributes)
		if element == nil {
			element = map[string]any{}
		}
		if field.Child != nil {
			nested, err := c.route(tag.Children, element, field.Child, base.Concat(idx), childAt)
			if err != nil {
				return nil, err
			}
			embedded = append(embedded, nested...)
		}
		elements = append(elements, element)
	}

	if err := values.Set(props, field.RelativePath, elements); err != nil {
		out := nodeError(ErrPropPathUnreachable, nil, at)
		out.Cause = err
		return nil, out
	}
	return embedded, nil
}

// unwrapParagraph returns the first node inside a paragraph, looking through
// its inline wrapper. Other nodes are returned as is.
func unwrapParagraph(node *markup.Node) *markup.Node {
	if node == nil || node.Type != markup.KindParagraph {
		return node
	}
	if len(node.Children) == 0 {
		return nil
	}
	first := node.Children[0]
	if first != nil && first.Type == markup.KindInline {
		if len(first.Children) == 0 {
			return nil
		}
		return first.Children[0]
	}
	return first
}
