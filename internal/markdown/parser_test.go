package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-richtext/internal/markdown"
	"github.com/goliatone/go-richtext/markup"
)

func parse(t *testing.T, opts markdown.Options, source string) *markup.Node {
	t.Helper()
	doc := markdown.NewParser(opts, nil).Parse([]byte(source))
	require.NotNil(t, doc)
	require.Equal(t, markup.KindDocument, doc.Type)
	return doc
}

func kinds(nodes []*markup.Node) []markup.Kind {
	out := make([]markup.Kind, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Type)
	}
	return out
}

// textOf concatenates text content below node, rendering breaks as spaces.
func textOf(node *markup.Node) string {
	var b strings.Builder
	var walk func(*markup.Node)
	walk = func(n *markup.Node) {
		switch n.Type {
		case markup.KindText, markup.KindCode:
			b.WriteString(attr(n, "content"))
		case markup.KindSoftBreak, markup.KindHardBreak:
			b.WriteByte(' ')
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(node)
	return b.String()
}

// attr returns a string attribute, or "" when it is missing.
func attr(node *markup.Node, key string) string {
	value, _ := node.AttrString(key)
	return value
}

func find(node *markup.Node, kind markup.Kind) *markup.Node {
	if node.Type == kind {
		return node
	}
	for _, child := range node.Children {
		if found := find(child, kind); found != nil {
			return found
		}
	}
	return nil
}

func TestParser_BlockStructure(t *testing.T) {
	doc := parse(t, markdown.Options{}, strings.Join([]string{
		"# Title",
		"",
		"Some *text*.",
		"",
		"> quoted",
		"",
		"---",
		"",
		"```go",
		"fmt.Println()",
		"```",
		"",
		"1. one",
		"2. two",
		"",
	}, "\n"))

	assert.Equal(t, []markup.Kind{
		markup.KindHeading,
		markup.KindParagraph,
		markup.KindBlockquote,
		markup.KindHR,
		markup.KindFence,
		markup.KindList,
	}, kinds(doc.Children))

	heading := doc.Children[0]
	level, ok := heading.AttrInt("level")
	require.True(t, ok)
	assert.Equal(t, 1, level)
	assert.Equal(t, "Title", textOf(heading))

	paragraph := doc.Children[1]
	require.Len(t, paragraph.Children, 1)
	assert.Equal(t, markup.KindInline, paragraph.Children[0].Type)
	assert.Equal(t, "Some text.", textOf(paragraph))
	assert.NotNil(t, find(paragraph, markup.KindEm))

	quote := doc.Children[2]
	assert.Equal(t, []markup.Kind{markup.KindParagraph}, kinds(quote.Children))

	fence := doc.Children[4]
	assert.Equal(t, "fmt.Println()\n", attr(fence, "content"))
	assert.Equal(t, "go", attr(fence, "language"))

	list := doc.Children[5]
	assert.True(t, list.AttrBool("ordered"))
	require.Len(t, list.Children, 2)
	assert.Equal(t, markup.KindItem, list.Children[0].Type)
	assert.Equal(t, "two", textOf(list.Children[1]))
}

func TestParser_FenceWithoutLanguage(t *testing.T) {
	doc := parse(t, markdown.Options{}, "```\nplain\n```\n")

	require.Len(t, doc.Children, 1)
	fence := doc.Children[0]
	assert.Equal(t, "plain\n", attr(fence, "content"))
	_, hasLanguage := fence.Attributes["language"]
	assert.False(t, hasLanguage)
}

func TestParser_InlineMarks(t *testing.T) {
	doc := parse(t, markdown.Options{}, "**bold** `code` ~~gone~~ [site](https://example.com \"Home\")\n")

	strong := find(doc, markup.KindStrong)
	require.NotNil(t, strong)
	assert.Equal(t, "bold", textOf(strong))

	code := find(doc, markup.KindCode)
	require.NotNil(t, code)
	assert.Equal(t, "code", attr(code, "content"))

	strike := find(doc, markup.KindTag)
	require.NotNil(t, strike)
	assert.Equal(t, markup.TagStrikethrough, strike.Tag)
	assert.Equal(t, "gone", textOf(strike))

	link := find(doc, markup.KindLink)
	require.NotNil(t, link)
	assert.Equal(t, "https://example.com", attr(link, "href"))
	assert.Equal(t, "Home", attr(link, "title"))
	assert.Equal(t, "site", textOf(link))
}

func TestParser_Linkify(t *testing.T) {
	doc := parse(t, markdown.Options{}, "see https://example.com\n")

	link := find(doc, markup.KindLink)
	require.NotNil(t, link)
	assert.Equal(t, "https://example.com", attr(link, "href"))
	assert.Equal(t, "https://example.com", textOf(link))
}

func TestParser_LineBreaks(t *testing.T) {
	soft := parse(t, markdown.Options{}, "one\ntwo\n")
	assert.NotNil(t, find(soft, markup.KindSoftBreak))
	assert.Nil(t, find(soft, markup.KindHardBreak))

	hard := parse(t, markdown.Options{HardBreaks: true}, "one\ntwo\n")
	assert.NotNil(t, find(hard, markup.KindHardBreak))
	assert.Nil(t, find(hard, markup.KindSoftBreak))
	assert.Equal(t, "one two", textOf(hard))
}

func TestParser_ImageIsEmittedAsUnsupportedNode(t *testing.T) {
	doc := parse(t, markdown.Options{}, "![a cat](cat.png)\n")

	image := find(doc, markup.Kind("image"))
	require.NotNil(t, image)
	assert.Equal(t, "cat.png", attr(image, "src"))
	assert.Equal(t, "a cat", attr(image, "alt"))
}

func TestParser_TablesRequireExtension(t *testing.T) {
	source := "| a | b |\n|---|---|\n| 1 | 2 |\n"

	plain := parse(t, markdown.Options{}, source)
	assert.Nil(t, find(plain, markup.Kind("table")))

	tables := parse(t, markdown.Options{Extensions: []string{"table"}}, source)
	table := find(tables, markup.Kind("table"))
	require.NotNil(t, table)
	assert.NotNil(t, find(table, markup.Kind("td")))
}

func TestParser_TaskList(t *testing.T) {
	doc := parse(t, markdown.Options{Extensions: []string{"gfm"}}, "- [x] done\n- [ ] todo\n")

	list := find(doc, markup.KindList)
	require.NotNil(t, list)
	require.Len(t, list.Children, 2)
	assert.True(t, strings.HasPrefix(textOf(list.Children[0]), "[x] "))
	assert.Contains(t, textOf(list.Children[0]), "done")
	assert.True(t, strings.HasPrefix(textOf(list.Children[1]), "[ ] "))
}

func TestKnownExtension(t *testing.T) {
	assert.True(t, markdown.KnownExtension("GFM"))
	assert.True(t, markdown.KnownExtension(" tasklist "))
	assert.False(t, markdown.KnownExtension("emoji"))
}

func TestParseFrontMatter(t *testing.T) {
	source := strings.Join([]string{
		"---",
		"title: Getting started",
		"meta:",
		"  author: Ada",
		"tags: [intro, guide]",
		"---",
		"# Body",
		"",
	}, "\n")

	meta, body, err := markdown.ParseFrontMatter([]byte(source))
	require.NoError(t, err)

	assert.Equal(t, "Getting started", meta["title"])
	assert.Equal(t, map[string]any{"author": "Ada"}, meta["meta"])
	assert.Equal(t, []any{"intro", "guide"}, meta["tags"])
	assert.Contains(t, string(body), "# Body")
	assert.NotContains(t, string(body), "title:")
}

func TestParseFrontMatter_Absent(t *testing.T) {
	meta, body, err := markdown.ParseFrontMatter([]byte("# Only body\n"))
	require.NoError(t, err)

	assert.NotNil(t, meta)
	assert.Empty(t, meta)
	assert.Equal(t, "# Only body\n", string(body))
}

func TestParser_ParseDocument(t *testing.T) {
	parser := markdown.NewParser(markdown.Options{}, nil)

	source, err := parser.ParseDocument([]byte("---\ntitle: Doc\n---\nHello\n"))
	require.NoError(t, err)

	assert.Equal(t, "Doc", source.FrontMatter["title"])
	require.Len(t, source.Tree.Children, 1)
	assert.Equal(t, "Hello", textOf(source.Tree.Children[0]))
}

func TestParser_TightAndLooseListItems(t *testing.T) {
	tight := parse(t, markdown.Options{}, "- one\n- two\n")
	list := tight.Children[0]
	require.Equal(t, markup.KindList, list.Type)
	assert.False(t, list.AttrBool("ordered"))
	require.Len(t, list.Children, 2)
	assert.Equal(t, []markup.Kind{markup.KindInline}, kinds(list.Children[0].Children))

	loose := parse(t, markdown.Options{}, "- one\n\n- two\n")
	list = loose.Children[0]
	require.Len(t, list.Children, 2)
	assert.Equal(t, []markup.Kind{markup.KindParagraph}, kinds(list.Children[0].Children))
	assert.Equal(t, "one", textOf(list.Children[0]))
}
