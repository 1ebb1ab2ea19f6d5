package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-richtext/internal/logging"
	"github.com/goliatone/go-richtext/markup"
	"github.com/goliatone/go-richtext/pkg/interfaces"
)

// Options configures the goldmark front-end.
type Options struct {
	// Extensions lists goldmark extensions by name. Empty selects the
	// defaults (strikethrough and linkify).
	Extensions []string
	// HardBreaks turns every soft line break into a hard break.
	HardBreaks bool
}

// Parser converts markdown source into a markup tree. It holds no per-call
// state and can be shared between goroutines.
type Parser struct {
	engine     goldmark.Markdown
	hardBreaks bool
	logger     interfaces.Logger
}

// NewParser builds a parser. A nil logger disables logging.
func NewParser(opts Options, logger interfaces.Logger) *Parser {
	return &Parser{
		engine:     goldmark.New(goldmark.WithExtensions(collectExtensions(opts.Extensions)...)),
		hardBreaks: opts.HardBreaks,
		logger:     logging.OrNoOp(logger),
	}
}

// Parse returns the markup tree for source. Goldmark accepts any input, so
// the only unrepresentable constructs are nodes the converter later rejects
// (images, tables).
func (p *Parser) Parse(source []byte) *markup.Node {
	root := p.engine.Parser().Parse(text.NewReader(source))
	w := &walker{source: source, hardBreaks: p.hardBreaks}
	doc := markup.Doc(w.blocks(root)...)
	p.logger.Debug("markdown.parse.completed",
		"bytes", len(source),
		"blocks", len(doc.Children),
	)
	return doc
}

type walker struct {
	source     []byte
	hardBreaks bool
}

func (w *walker) blocks(parent ast.Node) []*markup.Node {
	var out []*markup.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if node := w.block(child); node != nil {
			out = append(out, node)
		}
	}
	return out
}

func (w *walker) block(node ast.Node) *markup.Node {
	switch n := node.(type) {
	case *ast.Paragraph:
		return markup.Paragraph(markup.Inline(w.inlines(n)...))
	case *ast.TextBlock:
		return markup.Inline(w.inlines(n)...)
	case *ast.Heading:
		return markup.Heading(n.Level, markup.Inline(w.inlines(n)...))
	case *ast.ThematicBreak:
		return markup.HR()
	case *ast.FencedCodeBlock:
		return markup.Fence(w.lines(n.Lines()), string(n.Language(w.source)))
	case *ast.CodeBlock:
		return markup.Fence(w.lines(n.Lines()), "")
	case *ast.Blockquote:
		return markup.Blockquote(w.blocks(n)...)
	case *ast.List:
		return markup.List(n.IsOrdered(), w.blocks(n)...)
	case *ast.ListItem:
		return markup.Item(w.blocks(n)...)
	case *ast.HTMLBlock:
		raw := w.lines(n.Lines())
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(w.source))
		}
		return markup.Paragraph(markup.Inline(markup.Text(strings.TrimRight(raw, "\n"))))
	case *east.Table:
		return w.container("table", n, w.blocks)
	case *east.TableHeader:
		return w.container("thead", n, w.blocks)
	case *east.TableRow:
		return w.container("tr", n, w.blocks)
	case *east.TableCell:
		return w.container("td", n, func(cell ast.Node) []*markup.Node {
			return []*markup.Node{markup.Inline(w.inlines(cell)...)}
		})
	default:
		return w.container(markup.Kind(strings.ToLower(node.Kind().String())), node, w.blocks)
	}
}

func (w *walker) inlines(parent ast.Node) []*markup.Node {
	var out []*markup.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, w.inline(child)...)
	}
	return out
}

func (w *walker) inline(node ast.Node) []*markup.Node {
	switch n := node.(type) {
	case *ast.Text:
		out := []*markup.Node{markup.Text(string(n.Segment.Value(w.source)))}
		switch {
		case n.HardLineBreak() || (n.SoftLineBreak() && w.hardBreaks):
			out = append(out, markup.HardBreak())
		case n.SoftLineBreak():
			out = append(out, markup.SoftBreak())
		}
		return out
	case *ast.String:
		return []*markup.Node{markup.Text(string(n.Value))}
	case *ast.CodeSpan:
		return []*markup.Node{markup.Code(w.plain(n))}
	case *ast.Emphasis:
		if n.Level >= 2 {
			return []*markup.Node{markup.Strong(w.inlines(n)...)}
		}
		return []*markup.Node{markup.Em(w.inlines(n)...)}
	case *ast.Link:
		link := markup.Link(string(n.Destination), w.inlines(n)...)
		if len(n.Title) > 0 {
			link.Attributes["title"] = string(n.Title)
		}
		return []*markup.Node{link}
	case *ast.AutoLink:
		return []*markup.Node{markup.Link(string(n.URL(w.source)), markup.Text(string(n.Label(w.source))))}
	case *ast.Image:
		return []*markup.Node{{
			Type: "image",
			Attributes: map[string]any{
				"src":   string(n.Destination),
				"alt":   w.plain(n),
				"title": string(n.Title),
			},
			Children: []*markup.Node{},
		}}
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			segment := n.Segments.At(i)
			buf.Write(segment.Value(w.source))
		}
		return []*markup.Node{markup.Text(buf.String())}
	case *east.Strikethrough:
		return []*markup.Node{markup.Tag(markup.TagStrikethrough, nil, w.inlines(n)...)}
	case *east.TaskCheckBox:
		if n.IsChecked {
			return []*markup.Node{markup.Text("[x] ")}
		}
		return []*markup.Node{markup.Text("[ ] ")}
	default:
		return []*markup.Node{w.container(markup.Kind(strings.ToLower(node.Kind().String())), node, w.inlines)}
	}
}

func (w *walker) container(kind markup.Kind, node ast.Node, children func(ast.Node) []*markup.Node) *markup.Node {
	out := children(node)
	if out == nil {
		out = []*markup.Node{}
	}
	return &markup.Node{Type: kind, Children: out}
}

// plain concatenates the text below node, as used for code spans and alt text.
func (w *walker) plain(node ast.Node) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(w.source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func (w *walker) lines(segments *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		buf.Write(segment.Value(w.source))
	}
	return buf.String()
}

var extensionRegistry = map[string][]goldmark.Extender{
	"gfm":           {extension.GFM},
	"table":         {extension.Table},
	"tables":        {extension.Table},
	"strikethrough": {extension.Strikethrough},
	"linkify":       {extension.Linkify},
	"autolink":      {extension.Linkify},
	"tasklist":      {extension.TaskList},
}

// KnownExtension reports whether name selects a supported extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.Strikethrough, extension.Linkify}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		if ext, ok := extensionRegistry[key]; ok {
			extenders = append(extenders, ext...)
			seen[key] = struct{}{}
		}
	}
	return extenders
}
