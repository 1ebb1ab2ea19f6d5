package convert

import (
	"github.com/goliatone/go-richtext/document"
	"github.com/goliatone/go-richtext/markup"
)

var tagMarks = map[string]document.Mark{
	markup.TagUnderline:     document.MarkUnderline,
	markup.TagKeyboard:      document.MarkKeyboard,
	markup.TagStrikethrough: document.MarkStrikethrough,
	markup.TagSubscript:     document.MarkSubscript,
	markup.TagSuperscript:   document.MarkSuperscript,
}

// inline converts an inline region and collapses redundant empty runs.
func (c *Converter) inline(nodes []*markup.Node, at location) ([]*document.Node, error) {
	out, err := c.inlineSequence(nodes, at)
	if err != nil {
		return nil, err
	}
	return collapse(out), nil
}

func (c *Converter) inlineSequence(nodes []*markup.Node, at location) ([]*document.Node, error) {
	out := make([]*document.Node, 0, len(nodes))
	for i, node := range nodes {
		converted, err := c.inlineNode(node, at.child(i))
		if err != nil {
			return nil, err
		}
		out = append(out, converted...)
	}
	return out, nil
}

func (c *Converter) inlineNode(node *markup.Node, at location) ([]*document.Node, error) {
	if node == nil {
		return nil, nodeError(ErrUnknownNodeKind, nil, at)
	}

	switch node.Type {
	case markup.KindInline:
		return c.inlineSequence(node.Children, at)
	case markup.KindText:
		content, _ := node.AttrString("content")
		return textRuns(content), nil
	case markup.KindStrong:
		return c.marked(node, document.MarkBold, at)
	case markup.KindEm:
		return c.marked(node, document.MarkItalic, at)
	case markup.KindLink:
		children, err := c.inlineSequence(node.Children, at)
		if err != nil {
			return nil, err
		}
		href, _ := node.AttrString("href")
		applyLink(children, href)
		return children, nil
	case markup.KindCode:
		content, _ := node.AttrString("content")
		return []*document.Node{document.NewText(content, document.MarkCode)}, nil
	case markup.KindSoftBreak:
		return textRuns(" "), nil
	case markup.KindHardBreak:
		return textRuns("\n"), nil
	case markup.KindTag:
		if mark, ok := tagMarks[node.Tag]; ok {
			return c.marked(node, mark, at)
		}
		if node.Tag == markup.TagComponentInlineProp {
			if path, ok := propPathAttr(node); ok {
				children, err := c.inline(node.Children, at)
				if err != nil {
					return nil, err
				}
				prop := document.NewElement(document.TypeComponentInlineProp, children...)
				prop.PropPath = path
				return []*document.Node{prop}, nil
			}
		}
	}
	return nil, nodeError(ErrUnknownNodeKind, node, at)
}

func (c *Converter) marked(node *markup.Node, mark document.Mark, at location) ([]*document.Node, error) {
	children, err := c.inlineSequence(node.Children, at)
	if err != nil {
		return nil, err
	}
	applyMark(children, mark)
	return children, nil
}

// textRuns segments raw text into runs. Text is kept as a single run.
func textRuns(content string) []*document.Node {
	return []*document.Node{document.NewText(content)}
}

// applyMark unions mark onto every text run, including runs nested in
// inline prop references.
func applyMark(nodes []*document.Node, mark document.Mark) {
	for _, node := range nodes {
		if node.IsText() {
			node.Marks = node.Marks.With(mark)
			continue
		}
		applyMark(node.Children, mark)
	}
}

// applyLink sets href on runs that are not already linked, so the innermost
// link wins.
func applyLink(nodes []*document.Node, href string) {
	for _, node := range nodes {
		if node.IsText() {
			if node.Href == "" {
				node.Href = href
			}
			continue
		}
		applyLink(node.Children, href)
	}
}

// collapse drops empty plain runs that follow another run (or start the
// region) unless they are last, and guarantees a non-empty result.
func collapse(nodes []*document.Node) []*document.Node {
	out := make([]*document.Node, 0, len(nodes))
	var last *document.Node
	for i, node := range nodes {
		if isEmptyRun(node) && (last == nil || last.IsText()) && i != len(nodes)-1 {
			continue
		}
		out = append(out, node)
		last = node
	}
	if len(out) == 0 {
		out = append(out, document.EmptyText())
	}
	return out
}

func isEmptyRun(node *document.Node) bool {
	return node.IsText() && node.Text == "" && node.Marks == 0 && node.Href == ""
}

func propPathAttr(node *markup.Node) (document.PropPath, bool) {
	raw, ok := node.Attr("propPath")
	if !ok {
		return nil, false
	}
	return document.ParsePropPath(raw)
}
