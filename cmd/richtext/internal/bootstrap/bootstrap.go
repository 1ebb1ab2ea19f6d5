package bootstrap

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	richtext "github.com/goliatone/go-richtext"
	"github.com/goliatone/go-richtext/internal/logging"
	"github.com/goliatone/go-richtext/internal/logging/console"
	"github.com/goliatone/go-richtext/pkg/interfaces"
)

// Options captures configuration for CLI bootstraps.
type Options struct {
	ComponentsFile string
	Extensions     []string
	HardBreaks     bool
	FrontMatter    bool
	NestedLists    bool
	ValidateProps  bool
	Pattern        string
	Recursive      bool
	Timeout        time.Duration

	LogProvider string
	LogLevel    string
	LogFormat   string
	// LogWriter receives console provider output. Defaults to stderr.
	LogWriter io.Writer
}

// Module wraps the richtext runtime with the logger used by CLI commands.
type Module struct {
	Runtime  *richtext.Module
	Config   richtext.Config
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
}

// Config maps CLI options onto a runtime configuration with markdown and
// logging enabled.
func Config(opts Options) richtext.Config {
	cfg := richtext.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Features.Logger = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.HardBreaks = opts.HardBreaks
	cfg.Markdown.FrontMatter = opts.FrontMatter
	cfg.Markdown.Recursive = opts.Recursive
	if len(opts.Extensions) > 0 {
		cfg.Markdown.Extensions = cloneStrings(opts.Extensions)
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}

	cfg.Conversion.NestedLists = opts.NestedLists
	cfg.Conversion.Timeout = opts.Timeout
	if opts.ValidateProps {
		cfg.Features.PropsValidation = true
		cfg.Conversion.ValidateProps = true
	}

	if provider := strings.TrimSpace(opts.LogProvider); provider != "" {
		cfg.Logging.Provider = provider
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	cfg.Logging.Format = strings.TrimSpace(opts.LogFormat)
	return cfg
}

// BuildModule constructs a richtext module for the CLI.
func BuildModule(opts Options) (*Module, error) {
	cfg := Config(opts)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var moduleOpts []richtext.Option
	var provider interfaces.LoggerProvider
	if strings.EqualFold(cfg.Logging.Provider, "console") {
		writer := opts.LogWriter
		if writer == nil {
			writer = os.Stderr
		}
		consoleOpts := console.Options{Writer: writer}
		if level, ok := console.ParseLevel(cfg.Logging.Level); ok {
			consoleOpts.MinLevel = &level
		}
		provider = console.NewProvider(consoleOpts)
		moduleOpts = append(moduleOpts, richtext.WithLoggerProvider(provider))
	}
	if path := strings.TrimSpace(opts.ComponentsFile); path != "" {
		moduleOpts = append(moduleOpts, richtext.WithComponentsFile(path))
	}

	module, err := richtext.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise richtext module: %w", err)
	}
	if provider == nil {
		provider = module.LoggerProvider()
	}

	return &Module{
		Runtime:  module,
		Config:   cfg,
		Provider: provider,
		Logger:   logging.CommandsLogger(provider),
	}, nil
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
