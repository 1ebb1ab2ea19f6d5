// Package markup models the syntax tree produced by a Markdoc-style parser:
// markdown nodes plus custom tags, each carrying attributes and children.
package markup

import (
	"encoding/json"
	"math"

	"github.com/goliatone/go-richtext/internal/values"
)

// Kind is the node type reported by the parser.
type Kind string

const (
	KindDocument   Kind = "document"
	KindParagraph  Kind = "paragraph"
	KindHeading    Kind = "heading"
	KindBlockquote Kind = "blockquote"
	KindList       Kind = "list"
	KindItem       Kind = "item"
	KindFence      Kind = "fence"
	KindHR         Kind = "hr"
	KindInline     Kind = "inline"
	KindText       Kind = "text"
	KindStrong     Kind = "strong"
	KindEm         Kind = "em"
	KindLink       Kind = "link"
	KindCode       Kind = "code"
	KindSoftBreak  Kind = "softbreak"
	KindHardBreak  Kind = "hardbreak"
	KindTag        Kind = "tag"
)

// Reserved tag names understood by the converter.
const (
	TagLayout              = "layout"
	TagLayoutArea          = "layout-area"
	TagComponentBlock      = "component-block"
	TagComponentBlockProp  = "component-block-prop"
	TagComponentInlineProp = "component-inline-prop"
	TagUnderline           = "u"
	TagKeyboard            = "kbd"
	TagStrikethrough       = "s"
	TagSubscript           = "sub"
	TagSuperscript         = "sup"
)

// IsReservedTag reports whether name is handled by the converter itself and
// therefore cannot be claimed by a registered component.
func IsReservedTag(name string) bool {
	switch name {
	case TagLayout, TagLayoutArea, TagComponentBlock, TagComponentBlockProp, TagComponentInlineProp,
		TagUnderline, TagKeyboard, TagStrikethrough, TagSubscript, TagSuperscript:
		return true
	}
	return false
}

// Node is a single parser node. Tag is only set for KindTag nodes.
type Node struct {
	Type       Kind           `json:"type"`
	Tag        string         `json:"tag,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Children   []*Node        `json:"children,omitempty"`
}

// IsTag reports whether the node is a custom tag, optionally with the given name.
func (n *Node) IsTag(name ...string) bool {
	if n == nil || n.Type != KindTag {
		return false
	}
	if len(name) == 0 {
		return true
	}
	for _, candidate := range name {
		if n.Tag == candidate {
			return true
		}
	}
	return false
}

// Attr returns the raw attribute value.
func (n *Node) Attr(key string) (any, bool) {
	if n == nil || n.Attributes == nil {
		return nil, false
	}
	value, ok := n.Attributes[key]
	return value, ok
}

// AttrString returns a string attribute; non-string values report false.
func (n *Node) AttrString(key string) (string, bool) {
	value, ok := n.Attr(key)
	if !ok {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// AttrInt returns an integral numeric attribute.
func (n *Node) AttrInt(key string) (int, bool) {
	value, ok := n.Attr(key)
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

// AttrBool returns a boolean attribute, false when missing or not a bool.
func (n *Node) AttrBool(key string) bool {
	value, ok := n.Attr(key)
	if !ok {
		return false
	}
	b, _ := value.(bool)
	return b
}

// Clone deep-copies the node, its attributes and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Type:       n.Type,
		Tag:        n.Tag,
		Attributes: values.CloneMap(n.Attributes),
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}
