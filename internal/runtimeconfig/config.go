package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-richtext/internal/markdown"
)

var ErrLoggingProviderRequired = errors.New("richtext config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("richtext config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("richtext config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("richtext config: logging format is invalid")

// ErrMarkdownFeatureRequired keeps the markdown front-end behind its feature flag.
var ErrMarkdownFeatureRequired = errors.New("richtext config: markdown feature must be enabled to configure markdown")
var ErrMarkdownExtensionUnknown = errors.New("richtext config: markdown extension is unknown")

// ErrPropsValidationFeatureRequired keeps schema validation of props behind its feature flag.
var ErrPropsValidationFeatureRequired = errors.New("richtext config: props validation feature must be enabled to validate props")
var ErrConversionTimeoutInvalid = errors.New("richtext config: conversion timeout must be zero or positive")

// Config aggregates feature flags and options for the conversion module.
type Config struct {
	Features   Features
	Logging    LoggingConfig
	Markdown   MarkdownConfig
	Conversion ConversionConfig
}

// Features toggles module functionality.
type Features struct {
	Logger          bool
	Markdown        bool
	PropsValidation bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// MarkdownConfig captures parser and discovery behaviour for markdown sources.
type MarkdownConfig struct {
	Enabled    bool
	Extensions []string
	HardBreaks bool
	// FrontMatter strips and decodes a leading front matter block.
	FrontMatter bool
	Pattern     string
	Recursive   bool
}

// ConversionConfig tunes the tree converter.
type ConversionConfig struct {
	// NestedLists keeps nested lists found after the first child of a list item.
	NestedLists bool
	// ValidateProps checks routed props against each component's props schema.
	ValidateProps bool
	// Timeout bounds command driven conversions. Zero disables it.
	Timeout time.Duration
}

// DefaultConfig returns defaults suited to converting trusted markup trees.
func DefaultConfig() Config {
	return Config{
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Markdown: MarkdownConfig{
			Extensions:  []string{"strikethrough", "linkify"},
			FrontMatter: true,
			Pattern:     "*.md",
			Recursive:   true,
		},
		Conversion: ConversionConfig{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		for _, name := range cfg.Markdown.Extensions {
			if !markdown.KnownExtension(name) {
				return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, name)
			}
		}
	}
	if cfg.Conversion.ValidateProps && !cfg.Features.PropsValidation {
		return ErrPropsValidationFeatureRequired
	}
	if cfg.Conversion.Timeout < 0 {
		return ErrConversionTimeoutInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// MarkdownOptions maps the markdown section onto parser options.
func (cfg Config) MarkdownOptions() markdown.Options {
	return markdown.Options{
		Extensions: append([]string(nil), cfg.Markdown.Extensions...),
		HardBreaks: cfg.Markdown.HardBreaks,
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
