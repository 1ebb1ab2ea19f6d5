// Package richtext converts Markdoc-style markup trees, or markdown parsed
// into the same shape, into the node tree of a structured rich-text editor.
//
// A Module bundles a component registry, the tree converter and the
// optional markdown front-end behind one configuration:
//
//	module, err := richtext.New(richtext.DefaultConfig(),
//		richtext.WithComponents(&schema.Component{Name: "callout", Schema: ...}),
//	)
//	nodes, err := module.ConvertJSON(ctx, reader)
package richtext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-richtext/document"
	"github.com/goliatone/go-richtext/internal/components"
	"github.com/goliatone/go-richtext/internal/convert"
	"github.com/goliatone/go-richtext/internal/logging"
	"github.com/goliatone/go-richtext/internal/logging/console"
	"github.com/goliatone/go-richtext/internal/logging/gologger"
	"github.com/goliatone/go-richtext/internal/markdown"
	"github.com/goliatone/go-richtext/markup"
	"github.com/goliatone/go-richtext/pkg/interfaces"
	"github.com/goliatone/go-richtext/schema"
)

// Format names the syntax of a conversion source.
type Format string

const (
	// FormatMarkup is a JSON encoded markup tree.
	FormatMarkup Format = "markup"
	// FormatMarkdown is CommonMark text with optional front matter.
	FormatMarkdown Format = "markdown"
)

// ParseFormat resolves a user supplied format name.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "markup", "json", "markdoc":
		return FormatMarkup, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
}

// DetectFormat picks the format from a file extension, defaulting to markup.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown":
		return FormatMarkdown
	}
	return FormatMarkup
}

// Result is the outcome of converting one source.
type Result struct {
	FrontMatter map[string]any   `json:"front_matter,omitempty"`
	Document    []*document.Node `json:"document"`
}

// FileResult is a converted file found by ConvertDirectory.
type FileResult struct {
	Path     string `json:"path"`
	Checksum string `json:"checksum"`
	Result
}

// Module is the conversion runtime. It is safe for concurrent use.
type Module struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	logger    interfaces.Logger
	registry  *components.Registry
	converter *convert.Converter
	parser    *markdown.Parser
}

// New validates cfg, configures logging and registers the supplied
// components.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, wrapValidation(err, codeConfigInvalid, "invalid richtext configuration")
	}

	options := moduleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.provider
	if provider == nil {
		built, err := buildLoggerProvider(cfg)
		if err != nil {
			return nil, wrapValidation(err, codeConfigInvalid, "invalid logging configuration")
		}
		provider = built
	}

	registry := components.NewRegistry(components.WithLogger(logging.ComponentsLogger(provider)))
	if err := registry.RegisterAll(options.components...); err != nil {
		return nil, wrapValidation(err, codeComponentInvalid, "component registration failed")
	}
	for _, source := range options.sources {
		if err := source(registry); err != nil {
			return nil, wrapValidation(err, codeComponentInvalid, "component registration failed")
		}
	}

	converterOpts := []convert.Option{
		convert.WithLogger(logging.ConverterLogger(provider)),
		convert.WithNestedLists(cfg.Conversion.NestedLists),
	}
	if cfg.Conversion.ValidateProps {
		converterOpts = append(converterOpts, convert.WithPropsValidator(registry))
	}

	module := &Module{
		cfg:       cfg,
		provider:  provider,
		logger:    logging.ModuleLogger(provider, ""),
		registry:  registry,
		converter: convert.New(registry, converterOpts...),
	}
	if cfg.Markdown.Enabled {
		module.parser = markdown.NewParser(cfg.MarkdownOptions(), logging.MarkdownLogger(provider))
	}
	return module, nil
}

func buildLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Logging.Provider), "gologger") {
		provider, err := gologger.NewProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		return provider, nil
	}

	opts := console.Options{}
	if level, ok := console.ParseLevel(cfg.Logging.Level); ok {
		opts.MinLevel = &level
	}
	return console.NewProvider(opts), nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// LoggerProvider exposes the provider backing module logs. It is nil when
// logging is disabled.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Components lists the registered components ordered by name.
func (m *Module) Components() []*schema.Component {
	return m.registry.List()
}

// RegisterComponent adds a component after construction.
func (m *Module) RegisterComponent(component *schema.Component) error {
	if err := m.registry.Register(component); err != nil {
		return wrapValidation(err, codeComponentInvalid, "component registration failed")
	}
	return nil
}

// Convert transforms a markup tree into editor nodes.
func (m *Module) Convert(ctx context.Context, root *markup.Node) ([]*document.Node, error) {
	return m.run(ctx, root, "", FormatMarkup)
}

// ConvertJSON decodes a JSON markup tree from r and converts it.
func (m *Module) ConvertJSON(ctx context.Context, r io.Reader) ([]*document.Node, error) {
	root, err := markup.Decode(r)
	if err != nil {
		return nil, wrapValidation(err, codeDecodeFailed, "markup tree could not be decoded")
	}
	return m.run(ctx, root, "", FormatMarkup)
}

// ConvertMarkdown parses markdown source and converts the resulting tree.
func (m *Module) ConvertMarkdown(ctx context.Context, source []byte) (*Result, error) {
	return m.convertMarkdown(ctx, "", source)
}

// ConvertSource converts source according to format.
func (m *Module) ConvertSource(ctx context.Context, format Format, source []byte) (*Result, error) {
	switch format {
	case FormatMarkdown:
		return m.ConvertMarkdown(ctx, source)
	case FormatMarkup:
		nodes, err := m.ConvertJSON(ctx, bytes.NewReader(source))
		if err != nil {
			return nil, err
		}
		return &Result{Document: nodes}, nil
	default:
		return nil, wrapValidation(fmt.Errorf("%w: %q", ErrUnknownFormat, format), codeDecodeFailed, "unsupported source format")
	}
}

// ConvertDirectory converts the markdown files under dir in fsys, using the
// configured pattern and recursion settings.
func (m *Module) ConvertDirectory(ctx context.Context, fsys fs.FS, dir string) ([]*FileResult, error) {
	if m.parser == nil {
		return nil, wrapValidation(ErrMarkdownDisabled, codeMarkdownDisabled, "markdown conversion is disabled")
	}

	loader := markdown.NewLoader(fsys, m.parser, markdown.LoaderConfig{
		Pattern:         m.cfg.Markdown.Pattern,
		Recursive:       m.cfg.Markdown.Recursive,
		KeepFrontMatter: !m.cfg.Markdown.FrontMatter,
	})
	files, err := loader.LoadDirectory(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			return nil, wrapConvertError(err)
		}
		return nil, wrapValidation(err, codeMarkdownFailed, "markdown directory could not be loaded")
	}

	results := make([]*FileResult, 0, len(files))
	for _, file := range files {
		nodes, err := m.run(ctx, file.Source.Tree, file.Path, FormatMarkdown)
		if err != nil {
			return nil, err
		}
		results = append(results, &FileResult{
			Path:     file.Path,
			Checksum: file.Checksum,
			Result:   Result{FrontMatter: file.Source.FrontMatter, Document: nodes},
		})
	}
	return results, nil
}

func (m *Module) convertMarkdown(ctx context.Context, path string, source []byte) (*Result, error) {
	if m.parser == nil {
		return nil, wrapValidation(ErrMarkdownDisabled, codeMarkdownDisabled, "markdown conversion is disabled")
	}

	result := &Result{}
	var tree *markup.Node
	if m.cfg.Markdown.FrontMatter {
		parsed, err := m.parser.ParseDocument(source)
		if err != nil {
			return nil, wrapValidation(err, codeMarkdownFailed, "markdown source could not be parsed")
		}
		result.FrontMatter = parsed.FrontMatter
		tree = parsed.Tree
	} else {
		tree = m.parser.Parse(source)
	}

	nodes, err := m.run(ctx, tree, path, FormatMarkdown)
	if err != nil {
		return nil, err
	}
	result.Document = nodes
	return result, nil
}

func (m *Module) run(ctx context.Context, root *markup.Node, path string, format Format) ([]*document.Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, wrapConvertError(err)
	}

	logger := logging.WithSourceContext(m.logger.WithContext(ctx), path, string(format), uuid.NewString())
	logger.Debug("richtext.convert.start")

	nodes, err := m.converter.Convert(root)
	if err != nil {
		logger.Error("richtext.convert.failed", "error", err)
		return nil, wrapConvertError(err)
	}
	logger.Info("richtext.convert.completed", "blocks", len(nodes))
	return nodes, nil
}

// Convert transforms root with a fixed set of components and default
// options. lookup may be nil.
func Convert(root *markup.Node, lookup schema.Lookup) ([]*document.Node, error) {
	nodes, err := convert.Convert(root, lookup)
	if err != nil {
		return nil, wrapConvertError(err)
	}
	return nodes, nil
}

var (
	_ convert.ChildFieldResolver = (*components.Registry)(nil)
	_ convert.PropsValidator     = (*components.Registry)(nil)
	_ schema.Lookup              = (*components.Registry)(nil)
)
