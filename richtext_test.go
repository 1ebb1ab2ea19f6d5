package richtext_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	richtext "github.com/goliatone/go-richtext"
	"github.com/goliatone/go-richtext/document"
	"github.com/goliatone/go-richtext/internal/logging/console"
	"github.com/goliatone/go-richtext/markup"
	"github.com/goliatone/go-richtext/schema"
)

func calloutComponent() *schema.Component {
	return &schema.Component{
		Name:  "callout",
		Label: "Callout",
		Schema: map[string]*schema.Field{
			"tone":    schema.Scalar("Tone"),
			"content": schema.Child(schema.ChildBlock),
		},
		PropsSchema: map[string]any{
			"type":     "object",
			"required": []any{"tone"},
			"properties": map[string]any{
				"tone": map[string]any{"type": "string", "enum": []any{"info", "warning"}},
			},
		},
	}
}

func markdownConfig() richtext.Config {
	cfg := richtext.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	return cfg
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := richtext.DefaultConfig()
	cfg.Conversion.ValidateProps = true

	_, err := richtext.New(cfg)
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.True(t, errors.Is(err, richtext.ErrPropsValidationFeatureRequired))
}

func TestNew_RejectsInvalidComponents(t *testing.T) {
	_, err := richtext.New(richtext.DefaultConfig(),
		richtext.WithComponents(calloutComponent(), calloutComponent()),
	)
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.True(t, errors.Is(err, richtext.ErrDuplicateComponent))
}

func TestNew_LoadsComponentsFromReader(t *testing.T) {
	defs := `[{"name":"quote","schema":{"body":{"kind":"child","childKind":"inline"}}}]`

	module, err := richtext.New(richtext.DefaultConfig(), richtext.WithComponentsReader(strings.NewReader(defs)))
	require.NoError(t, err)

	list := module.Components()
	require.Len(t, list, 1)
	assert.Equal(t, "quote", list[0].Name)
}

func TestModule_ConvertJSON(t *testing.T) {
	module, err := richtext.New(richtext.DefaultConfig())
	require.NoError(t, err)

	source := `{"type":"document","children":[
		{"type":"heading","attributes":{"level":2},"children":[{"type":"inline","children":[{"type":"text","attributes":{"content":"Hi"}}]}]},
		{"type":"paragraph","children":[{"type":"inline","children":[{"type":"strong","children":[{"type":"text","attributes":{"content":"bold"}}]}]}]}
	]}`

	nodes, err := module.ConvertJSON(context.Background(), strings.NewReader(source))
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, document.TypeHeading, nodes[0].Type)
	assert.Equal(t, 2, nodes[0].Level)
	assert.Equal(t, "Hi", nodes[0].PlainText())
	require.Len(t, nodes[1].Children, 1)
	assert.True(t, nodes[1].Children[0].Marks.Has(document.MarkBold))
}

func TestModule_ConvertJSONDecodeFailure(t *testing.T) {
	module, err := richtext.New(richtext.DefaultConfig())
	require.NoError(t, err)

	_, err = module.ConvertJSON(context.Background(), strings.NewReader(`{"children":[]}`))
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.True(t, errors.Is(err, markup.ErrMissingType))
}

func TestModule_ConvertRoutesComponentChildren(t *testing.T) {
	module, err := richtext.New(richtext.DefaultConfig(), richtext.WithComponents(calloutComponent()))
	require.NoError(t, err)

	root := markup.Doc(
		markup.Tag("callout", map[string]any{"tone": "info"},
			markup.Paragraph(markup.Inline(markup.Text("Heads up"))),
		),
	)

	nodes, err := module.Convert(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	block := nodes[0]
	assert.Equal(t, document.TypeComponentBlock, block.Type)
	assert.Equal(t, "callout", block.Component)
	assert.Equal(t, map[string]any{"tone": "info"}, block.Props)
	require.Len(t, block.Children, 1)
	assert.Equal(t, document.TypeComponentBlockProp, block.Children[0].Type)
	assert.Equal(t, document.PropPath{"content"}, block.Children[0].PropPath)
	assert.Equal(t, "Heads up", block.Children[0].PlainText())
	assert.Equal(t, document.TypeParagraph, nodes[1].Type)
}

func TestModule_ConvertCategorisesFailures(t *testing.T) {
	module, err := richtext.New(richtext.DefaultConfig())
	require.NoError(t, err)

	_, err = module.Convert(context.Background(), markup.Doc(markup.Tag("mystery", nil)))
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.True(t, errors.Is(err, richtext.ErrUnknownTag))
}

func TestModule_ConvertHonoursCancelledContext(t *testing.T) {
	module, err := richtext.New(richtext.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = module.Convert(ctx, markup.Doc())
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryCommand))
}

func TestModule_ValidatesPropsWhenEnabled(t *testing.T) {
	cfg := richtext.DefaultConfig()
	cfg.Features.PropsValidation = true
	cfg.Conversion.ValidateProps = true

	module, err := richtext.New(cfg, richtext.WithComponents(calloutComponent()))
	require.NoError(t, err)

	root := markup.Doc(markup.Tag("callout", map[string]any{"tone": "shout"}))
	_, err = module.Convert(context.Background(), root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, richtext.ErrPropsInvalid))

	ok := markup.Doc(markup.Tag("callout", map[string]any{"tone": "warning"}))
	_, err = module.Convert(context.Background(), ok)
	assert.NoError(t, err)
}

func TestModule_ConvertMarkdown(t *testing.T) {
	module, err := richtext.New(markdownConfig())
	require.NoError(t, err)

	result, err := module.ConvertMarkdown(context.Background(), []byte("---\ntitle: Notes\n---\n# Notes\n\n- one\n- two\n"))
	require.NoError(t, err)

	assert.Equal(t, "Notes", result.FrontMatter["title"])
	require.Len(t, result.Document, 3)
	assert.Equal(t, document.TypeHeading, result.Document[0].Type)
	assert.Equal(t, document.TypeUnorderedList, result.Document[1].Type)
	assert.Len(t, result.Document[1].Children, 2)
	assert.Equal(t, document.TypeParagraph, result.Document[2].Type)
}

func TestModule_ConvertMarkdownWithoutFrontMatter(t *testing.T) {
	cfg := markdownConfig()
	cfg.Markdown.FrontMatter = false

	module, err := richtext.New(cfg)
	require.NoError(t, err)

	result, err := module.ConvertMarkdown(context.Background(), []byte("plain\n"))
	require.NoError(t, err)
	assert.Nil(t, result.FrontMatter)
	assert.Equal(t, "plain", result.Document[0].PlainText())
}

func TestModule_ConvertMarkdownDisabled(t *testing.T) {
	module, err := richtext.New(richtext.DefaultConfig())
	require.NoError(t, err)

	_, err = module.ConvertMarkdown(context.Background(), []byte("# hi"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, richtext.ErrMarkdownDisabled))
}

func TestModule_ConvertMarkdownRejectsImages(t *testing.T) {
	module, err := richtext.New(markdownConfig())
	require.NoError(t, err)

	_, err = module.ConvertMarkdown(context.Background(), []byte("![cat](cat.png)\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, richtext.ErrUnknownNodeKind))
}

func TestModule_ConvertSource(t *testing.T) {
	module, err := richtext.New(markdownConfig())
	require.NoError(t, err)

	result, err := module.ConvertSource(context.Background(), richtext.FormatMarkup, []byte(`{"type":"document","children":[{"type":"hr"}]}`))
	require.NoError(t, err)
	assert.Equal(t, document.TypeDivider, result.Document[0].Type)

	_, err = module.ConvertSource(context.Background(), richtext.Format("rst"), nil)
	assert.True(t, errors.Is(err, richtext.ErrUnknownFormat))
}

func TestModule_ConvertDirectory(t *testing.T) {
	module, err := richtext.New(markdownConfig())
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"a.md":          {Data: []byte("alpha\n")},
		"nested/b.md":   {Data: []byte("---\ntitle: B\n---\nbeta\n")},
		"nested/c.json": {Data: []byte("{}")},
	}

	results, err := module.ConvertDirectory(context.Background(), fsys, ".")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "a.md", results[0].Path)
	assert.Equal(t, "alpha", results[0].Document[0].PlainText())
	assert.Equal(t, "nested/b.md", results[1].Path)
	assert.Equal(t, "B", results[1].FrontMatter["title"])
	assert.NotEmpty(t, results[1].Checksum)

	payload, err := json.Marshal(results[0])
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"path":"a.md"`)
	assert.Contains(t, string(payload), `"document":[`)
}

func TestModule_LogsConversions(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	module, err := richtext.New(richtext.DefaultConfig(), richtext.WithLoggerProvider(provider))
	require.NoError(t, err)

	_, err = module.Convert(context.Background(), markup.Doc(markup.Paragraph(markup.Inline(markup.Text("x")))))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "richtext.convert.completed")
	assert.Contains(t, out, "conversion_id=")
	assert.Contains(t, out, "source_format=markup")
}

func TestModule_ConcurrentConversions(t *testing.T) {
	module, err := richtext.New(richtext.DefaultConfig(), richtext.WithComponents(calloutComponent()))
	require.NoError(t, err)

	root := markup.Doc(markup.Tag("callout", map[string]any{"tone": "info"}, markup.Paragraph(markup.Inline(markup.Text("x")))))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := module.Convert(context.Background(), root); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]richtext.Format{
		"markup":   richtext.FormatMarkup,
		" JSON ":   richtext.FormatMarkup,
		"md":       richtext.FormatMarkdown,
		"Markdown": richtext.FormatMarkdown,
	}
	for input, want := range cases {
		got, err := richtext.ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := richtext.ParseFormat("rst")
	assert.True(t, errors.Is(err, richtext.ErrUnknownFormat))

	assert.Equal(t, richtext.FormatMarkdown, richtext.DetectFormat("docs/intro.MD"))
	assert.Equal(t, richtext.FormatMarkup, richtext.DetectFormat("tree.json"))
}

func TestConvert_PackageLevel(t *testing.T) {
	nodes, err := richtext.Convert(nil, nil)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, document.TypeParagraph, nodes[0].Type)
}
