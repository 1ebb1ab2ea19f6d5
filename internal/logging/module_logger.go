package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-richtext/pkg/interfaces"
)

const (
	rootModule       = "richtext"
	convertModule    = "richtext.convert"
	markdownModule   = "richtext.markdown"
	componentsModule = "richtext.components"
	commandsModule   = "richtext.commands"
)

const (
	fieldSourcePath   = "source_path"
	fieldSourceFormat = "source_format"
	fieldConversionID = "conversion_id"
)

// ModuleLogger returns the logger registered for module, tagged with a
// "module" field. A nil provider, or one that returns nil, yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// ConverterLogger scopes a logger to the tree converter.
func ConverterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, convertModule)
}

// MarkdownLogger scopes a logger to the markdown front-end.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// ComponentsLogger scopes a logger to the component registry.
func ComponentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, componentsModule)
}

// CommandsLogger scopes a logger to command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithSourceContext annotates logger with the source being converted.
// Blank values are skipped.
func WithSourceContext(logger interfaces.Logger, path, format, conversionID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if trimmed := strings.TrimSpace(format); trimmed != "" {
		fields[fieldSourceFormat] = trimmed
	}
	if trimmed := strings.TrimSpace(conversionID); trimmed != "" {
		fields[fieldConversionID] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
