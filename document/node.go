package document

import (
	"strings"

	"github.com/goliatone/go-richtext/internal/values"
)

// Type identifies an element node. Text runs use the zero value.
type Type string

const (
	TypeParagraph           Type = "paragraph"
	TypeHeading             Type = "heading"
	TypeBlockquote          Type = "blockquote"
	TypeOrderedList         Type = "ordered-list"
	TypeUnorderedList       Type = "unordered-list"
	TypeListItem            Type = "list-item"
	TypeListItemContent     Type = "list-item-content"
	TypeCode                Type = "code"
	TypeDivider             Type = "divider"
	TypeLayout              Type = "layout"
	TypeLayoutArea          Type = "layout-area"
	TypeComponentBlock      Type = "component-block"
	TypeComponentBlockProp  Type = "component-block-prop"
	TypeComponentInlineProp Type = "component-inline-prop"
)

// Node is a single entry of the document tree. Which fields are meaningful
// depends on Type:
//
//   - text runs: Text, Marks, Href
//   - heading: Level
//   - code: Language (optional)
//   - layout: Layout
//   - component-block: Component, Props
//   - component-block-prop, component-inline-prop: PropPath
type Node struct {
	Type Type

	Text  string
	Marks Mark
	Href  string

	Level     int
	Language  string
	Layout    []any
	Component string
	Props     map[string]any
	PropPath  PropPath

	Children []*Node
}

// IsText reports whether the node is a text run.
func (n *Node) IsText() bool { return n != nil && n.Type == "" }

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool { return n != nil && n.Type != "" }

// IsInlineProp reports whether the node is an inline component prop reference.
func (n *Node) IsInlineProp() bool { return n != nil && n.Type == TypeComponentInlineProp }

// PlainText concatenates the text of every run below the node.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	if n.IsText() {
		return n.Text
	}
	var buf strings.Builder
	for _, child := range n.Children {
		buf.WriteString(child.PlainText())
	}
	return buf.String()
}

// Clone deep-copies the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Layout != nil {
		out.Layout = values.CloneSlice(n.Layout)
	}
	if n.Props != nil {
		out.Props = values.CloneMap(n.Props)
	}
	if n.PropPath != nil {
		out.PropPath = n.PropPath.Concat()
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = child.Clone()
		}
	}
	return &out
}

// NewText creates a text run with the supplied marks applied.
func NewText(text string, marks ...Mark) *Node {
	node := &Node{Text: text}
	for _, mark := range marks {
		node.Marks = node.Marks.With(mark)
	}
	return node
}

// EmptyText creates the empty, markless text run used as a placeholder leaf.
func EmptyText() *Node {
	return &Node{}
}

// NewElement creates an element of the given type.
func NewElement(t Type, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Type: t, Children: children}
}

// NewParagraph creates a paragraph holding the supplied inline nodes.
func NewParagraph(children ...*Node) *Node {
	return NewElement(TypeParagraph, children...)
}

// EmptyParagraph creates a paragraph with a single empty text run.
func EmptyParagraph() *Node {
	return NewParagraph(EmptyText())
}

// EmptyInlineProp creates the path-less inline prop placeholder the editor
// expects inside a component block that has no children of its own.
func EmptyInlineProp() *Node {
	return NewElement(TypeComponentInlineProp, EmptyText())
}

// Walk visits every node depth-first, parents before children. It stops at
// the first error returned by fn.
func Walk(nodes []*Node, fn func(n *Node, depth int) error) error {
	return walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(*Node, int) error) error {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if err := fn(node, depth); err != nil {
			return err
		}
		if err := walk(node.Children, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
