package convertcmd

import (
	"errors"

	"github.com/goliatone/go-richtext/internal/commands"
	"github.com/goliatone/go-richtext/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterConvertCommands.
type HandlerSet struct {
	File      *ConvertFileHandler
	Directory *ConvertDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	streams  IO
	fileOpts []commands.HandlerOption[ConvertFileCommand]
	dirOpts  []commands.HandlerOption[ConvertDirectoryCommand]
}

// WithIO sets the output writer, file readers and observer of the handlers.
func WithIO(streams IO) Option {
	return func(o *options) {
		o.streams = streams
	}
}

// WithFileHandlerOptions forwards options to the file handler constructor.
func WithFileHandlerOptions(opts ...commands.HandlerOption[ConvertFileCommand]) Option {
	return func(o *options) {
		o.fileOpts = append(o.fileOpts, opts...)
	}
}

// WithDirectoryHandlerOptions forwards options to the directory handler constructor.
func WithDirectoryHandlerOptions(opts ...commands.HandlerOption[ConvertDirectoryCommand]) Option {
	return func(o *options) {
		o.dirOpts = append(o.dirOpts, opts...)
	}
}

// RegisterConvertCommands builds the conversion handlers and registers them
// with reg when it is not nil.
func RegisterConvertCommands(reg CommandRegistry, service Service, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("convert command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "convert")
	set := &HandlerSet{
		File:      NewConvertFileHandler(service, logger, cfg.streams, cfg.fileOpts...),
		Directory: NewConvertDirectoryHandler(service, logger, cfg.streams, cfg.dirOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.File); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Directory); err != nil {
			return nil, err
		}
	}
	return set, nil
}
