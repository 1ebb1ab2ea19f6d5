package convert

import (
	"strings"

	"github.com/goliatone/go-richtext/document"
	"github.com/goliatone/go-richtext/internal/values"
	"github.com/goliatone/go-richtext/markup"
	"github.com/goliatone/go-richtext/schema"
)

func (c *Converter) blocks(nodes []*markup.Node, at location) ([]*document.Node, error) {
	out := make([]*document.Node, 0, len(nodes))
	for i, node := range nodes {
		converted, err := c.block(node, at.child(i))
		if err != nil {
			return nil, err
		}
		out = append(out, converted...)
	}
	return out, nil
}

func (c *Converter) block(node *markup.Node, at location) ([]*document.Node, error) {
	if node == nil {
		return nil, nodeError(ErrUnknownNodeKind, nil, at)
	}

	switch node.Type {
	case markup.KindBlockquote:
		return c.wrap(document.TypeBlockquote, node, at)
	case markup.KindFence:
		return one(fence(node)), nil
	case markup.KindHeading:
		children, err := c.inline(node.Children, at)
		if err != nil {
			return nil, err
		}
		heading := document.NewElement(document.TypeHeading, children...)
		heading.Level = headingLevel(node)
		return one(heading), nil
	case markup.KindList:
		listType := document.TypeUnorderedList
		if node.AttrBool("ordered") {
			listType = document.TypeOrderedList
		}
		return c.wrap(listType, node, at)
	case markup.KindItem:
		item, err := c.listItem(node, at)
		if err != nil {
			return nil, err
		}
		return one(item), nil
	case markup.KindParagraph:
		children, err := c.inline(node.Children, at)
		if err != nil {
			return nil, err
		}
		if len(children) == 1 && children[0].IsInlineProp() {
			return children, nil
		}
		return one(document.NewParagraph(children...)), nil
	case markup.KindHR:
		return one(document.NewElement(document.TypeDivider, document.EmptyText())), nil
	case markup.KindTag:
		return c.tag(node, at)
	default:
		return c.inlineNode(node, at)
	}
}

func (c *Converter) tag(node *markup.Node, at location) ([]*document.Node, error) {
	switch node.Tag {
	case markup.TagLayout:
		layout, err := c.wrap(document.TypeLayout, node, at)
		if err != nil {
			return nil, err
		}
		if raw, ok := node.Attr("layout"); ok {
			if shape, ok := values.AsSlice(raw); ok {
				layout[0].Layout = shape
			}
		}
		return layout, nil
	case markup.TagLayoutArea:
		return c.wrap(document.TypeLayoutArea, node, at)
	case markup.TagComponentBlock:
		name, _ := node.AttrString("component")
		props := map[string]any{}
		if raw, ok := node.Attr("props"); ok {
			if typed, ok := raw.(map[string]any); ok {
				props = values.CloneMap(typed)
			}
		}
		return c.componentBlock(name, props, node, at)
	case markup.TagComponentBlockProp:
		if path, ok := propPathAttr(node); ok {
			prop, err := c.wrap(document.TypeComponentBlockProp, node, at)
			if err != nil {
				return nil, err
			}
			prop[0].PropPath = path
			return prop, nil
		}
	}

	component, ok := c.components.Component(node.Tag)
	if !ok {
		return nil, nodeError(ErrUnknownTag, node, at)
	}
	return c.registered(component, node, at)
}

// registered converts a tag bound to a component. Without a usable single
// child field the attributes become the props and the children are converted
// as blocks.
func (c *Converter) registered(component *schema.Component, node *markup.Node, at location) ([]*document.Node, error) {
	field, err := c.singleChildField(node.Tag, component)
	if err != nil {
		c.logger.Warn("richtext.component.shorthand_skipped",
			"component", node.Tag,
			"path", string(at),
			"error", err,
		)
		field = nil
	}

	props := values.CloneMap(node.Attributes)
	if props == nil {
		props = map[string]any{}
	}
	if field == nil {
		return c.componentBlock(node.Tag, props, node, at)
	}

	// Routed children may be empty; only the generic path gets the
	// placeholder inline prop.
	children, err := c.route(node.Children, props, field, document.PropPath{}, at)
	if err != nil {
		return nil, err
	}
	if err := c.validate(node.Tag, node, props, at); err != nil {
		return nil, err
	}

	c.logger.Debug("richtext.component.routed",
		"component", node.Tag,
		"field", field.RelativePath.String(),
		"embedded", len(children),
	)
	block := document.NewElement(document.TypeComponentBlock, children...)
	block.Component = node.Tag
	block.Props = props
	return one(block), nil
}

func (c *Converter) componentBlock(name string, props map[string]any, node *markup.Node, at location) ([]*document.Node, error) {
	children, err := c.blocks(node.Children, at)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		children = []*document.Node{document.EmptyInlineProp()}
	}
	if err := c.validate(name, node, props, at); err != nil {
		return nil, err
	}
	block := document.NewElement(document.TypeComponentBlock, children...)
	block.Component = name
	block.Props = props
	return one(block), nil
}

// listItem keeps the first child as the item content. A first paragraph
// contributes its inline children.
func (c *Converter) listItem(node *markup.Node, at location) (*document.Node, error) {
	var inline []*markup.Node
	contentAt := at
	if len(node.Children) > 0 {
		first := node.Children[0]
		contentAt = at.child(0)
		if first != nil && first.Type == markup.KindParagraph {
			inline = first.Children
		} else {
			inline = []*markup.Node{first}
		}
	}

	content, err := c.inline(inline, contentAt)
	if err != nil {
		return nil, err
	}
	item := document.NewElement(document.TypeListItem,
		document.NewElement(document.TypeListItemContent, content...),
	)

	if !c.nestedLists {
		return item, nil
	}
	for i := 1; i < len(node.Children); i++ {
		child := node.Children[i]
		if child == nil || child.Type != markup.KindList {
			continue
		}
		nested, err := c.block(child, at.child(i))
		if err != nil {
			return nil, err
		}
		item.Children = append(item.Children, nested...)
	}
	return item, nil
}

func (c *Converter) wrap(t document.Type, node *markup.Node, at location) ([]*document.Node, error) {
	children, err := c.blocks(node.Children, at)
	if err != nil {
		return nil, err
	}
	return one(document.NewElement(t, children...)), nil
}

func (c *Converter) singleChildField(tag string, component *schema.Component) (*schema.ChildFieldPath, error) {
	if resolver, ok := c.components.(ChildFieldResolver); ok {
		return resolver.SingleChildField(tag)
	}
	return schema.FindSingleChildField(component.Root())
}

func (c *Converter) validate(component string, node *markup.Node, props map[string]any, at location) error {
	if c.validator == nil {
		return nil
	}
	if err := c.validator.ValidateProps(component, props); err != nil {
		out := nodeError(ErrPropsInvalid, node, at)
		out.Tag = component
		out.Cause = err
		return out
	}
	return nil
}

// fence strips exactly one trailing newline from the code content.
func fence(node *markup.Node) *document.Node {
	content, _ := node.AttrString("content")
	code := document.NewElement(document.TypeCode, document.NewText(strings.TrimSuffix(content, "\n")))
	if language, ok := node.AttrString("language"); ok {
		code.Language = language
	}
	return code
}

func headingLevel(node *markup.Node) int {
	level, ok := node.AttrInt("level")
	if !ok || level < 1 {
		return 1
	}
	return level
}

func one(node *document.Node) []*document.Node {
	return []*document.Node{node}
}
