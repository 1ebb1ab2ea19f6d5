package markup

func container(kind Kind, attrs map[string]any, children []*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Type: kind, Attributes: attrs, Children: children}
}

// Doc builds a document root.
func Doc(children ...*Node) *Node { return container(KindDocument, nil, children) }

// Paragraph builds a paragraph.
func Paragraph(children ...*Node) *Node { return container(KindParagraph, nil, children) }

// Inline builds the inline wrapper the parser places inside paragraphs and headings.
func Inline(children ...*Node) *Node { return container(KindInline, nil, children) }

func Heading(level int, children ...*Node) *Node {
	return container(KindHeading, map[string]any{"level": level}, children)
}

func Blockquote(children ...*Node) *Node { return container(KindBlockquote, nil, children) }

func List(ordered bool, items ...*Node) *Node {
	return container(KindList, map[string]any{"ordered": ordered}, items)
}

func Item(children ...*Node) *Node { return container(KindItem, nil, children) }

// Fence builds a code block. An empty language omits the attribute.
func Fence(content, language string) *Node {
	attrs := map[string]any{"content": content}
	if language != "" {
		attrs["language"] = language
	}
	return container(KindFence, attrs, nil)
}

func HR() *Node { return container(KindHR, nil, nil) }

// Text builds a text leaf.
func Text(content string) *Node {
	return &Node{Type: KindText, Attributes: map[string]any{"content": content}}
}

func Strong(children ...*Node) *Node { return container(KindStrong, nil, children) }

func Em(children ...*Node) *Node { return container(KindEm, nil, children) }

func Link(href string, children ...*Node) *Node {
	return container(KindLink, map[string]any{"href": href}, children)
}

// Code builds an inline code span.
func Code(content string) *Node {
	return &Node{Type: KindCode, Attributes: map[string]any{"content": content}}
}

func SoftBreak() *Node { return &Node{Type: KindSoftBreak} }

func HardBreak() *Node { return &Node{Type: KindHardBreak} }

// Tag builds a custom tag node. attrs may be nil.
func Tag(name string, attrs map[string]any, children ...*Node) *Node {
	node := container(KindTag, attrs, children)
	node.Tag = name
	return node
}
