package richtext

import (
	"io"

	"github.com/goliatone/go-richtext/internal/components"
	"github.com/goliatone/go-richtext/pkg/interfaces"
	"github.com/goliatone/go-richtext/schema"
)

// Option customises New.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider   interfaces.LoggerProvider
	components []*schema.Component
	sources    []func(*components.Registry) error
}

// WithLoggerProvider routes module logs through provider, overriding the
// logging section of the configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithComponents registers component definitions.
func WithComponents(defs ...*schema.Component) Option {
	return func(o *moduleOptions) {
		o.components = append(o.components, defs...)
	}
}

// WithComponentsReader registers the components of a JSON definition stream.
func WithComponentsReader(r io.Reader) Option {
	return func(o *moduleOptions) {
		o.sources = append(o.sources, func(reg *components.Registry) error {
			return reg.Load(r)
		})
	}
}

// WithComponentsFile registers the components of a JSON definition file.
func WithComponentsFile(path string) Option {
	return func(o *moduleOptions) {
		o.sources = append(o.sources, func(reg *components.Registry) error {
			return reg.LoadFile(path)
		})
	}
}
