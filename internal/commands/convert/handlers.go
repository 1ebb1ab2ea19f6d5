package convertcmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	command "github.com/goliatone/go-command"

	richtext "github.com/goliatone/go-richtext"
	"github.com/goliatone/go-richtext/internal/commands"
	"github.com/goliatone/go-richtext/pkg/interfaces"
)

const (
	fileOperation      = "convert.file"
	directoryOperation = "convert.directory"
)

var (
	_ command.Commander[ConvertFileCommand]      = (*ConvertFileHandler)(nil)
	_ command.Commander[ConvertDirectoryCommand] = (*ConvertDirectoryHandler)(nil)
)

// Service is the subset of the richtext module the handlers need.
type Service interface {
	ConvertSource(ctx context.Context, format richtext.Format, source []byte) (*richtext.Result, error)
	ConvertDirectory(ctx context.Context, fsys fs.FS, dir string) ([]*richtext.FileResult, error)
}

// Outcome summarises one converted source for observers.
type Outcome struct {
	Path        string
	Format      richtext.Format
	Blocks      int
	FrontMatter bool
}

// IO holds the side effects of the handlers. Zero values write to stdout
// and read from the host filesystem.
type IO struct {
	Output   io.Writer
	ReadFile func(path string) ([]byte, error)
	DirFS    func(dir string) fs.FS
	// Observe is called once per converted source, after output is written.
	Observe func(Outcome)
}

func (o IO) withDefaults() IO {
	if o.Output == nil {
		o.Output = os.Stdout
	}
	if o.ReadFile == nil {
		o.ReadFile = os.ReadFile
	}
	if o.DirFS == nil {
		o.DirFS = os.DirFS
	}
	if o.Observe == nil {
		o.Observe = func(Outcome) {}
	}
	return o
}

// ConvertFileHandler converts single files through the shared handler.
type ConvertFileHandler struct {
	inner *commands.Handler[ConvertFileCommand]
}

// NewConvertFileHandler binds a file handler to service.
func NewConvertFileHandler(service Service, logger interfaces.Logger, streams IO, opts ...commands.HandlerOption[ConvertFileCommand]) *ConvertFileHandler {
	baseLogger := commands.EnsureLogger(logger)
	streams = streams.withDefaults()

	exec := func(ctx context.Context, msg ConvertFileCommand) error {
		format := richtext.DetectFormat(msg.Path)
		if strings.TrimSpace(msg.Format) != "" {
			parsed, err := richtext.ParseFormat(msg.Format)
			if err != nil {
				return err
			}
			format = parsed
		}

		source, err := streams.ReadFile(msg.Path)
		if err != nil {
			return fmt.Errorf("convert command: read %s: %w", msg.Path, err)
		}

		result, err := service.ConvertSource(ctx, format, source)
		if err != nil {
			return err
		}
		if err := writeJSON(streams.Output, result); err != nil {
			return err
		}

		streams.Observe(Outcome{
			Path:        msg.Path,
			Format:      format,
			Blocks:      len(result.Document),
			FrontMatter: len(result.FrontMatter) > 0,
		})
		baseLogger.Debug("richtext.command.convert_file.completed",
			"path", msg.Path,
			"blocks", len(result.Document),
		)
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertFileCommand]{
		commands.WithLogger[ConvertFileCommand](baseLogger),
		commands.WithOperation[ConvertFileCommand](fileOperation),
		commands.WithMessageFields(func(msg ConvertFileCommand) map[string]any {
			fields := map[string]any{"path": msg.Path}
			if msg.Format != "" {
				fields["format"] = msg.Format
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertFileCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertFileHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ConvertFileCommand].
func (h *ConvertFileHandler) Execute(ctx context.Context, msg ConvertFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ConvertDirectoryHandler converts markdown directories through the shared handler.
type ConvertDirectoryHandler struct {
	inner *commands.Handler[ConvertDirectoryCommand]
}

// NewConvertDirectoryHandler binds a directory handler to service.
func NewConvertDirectoryHandler(service Service, logger interfaces.Logger, streams IO, opts ...commands.HandlerOption[ConvertDirectoryCommand]) *ConvertDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)
	streams = streams.withDefaults()

	exec := func(ctx context.Context, msg ConvertDirectoryCommand) error {
		results, err := service.ConvertDirectory(ctx, streams.DirFS(msg.Directory), ".")
		if err != nil {
			return err
		}
		if results == nil {
			results = []*richtext.FileResult{}
		}
		if err := writeJSON(streams.Output, results); err != nil {
			return err
		}

		for _, result := range results {
			streams.Observe(Outcome{
				Path:        result.Path,
				Format:      richtext.FormatMarkdown,
				Blocks:      len(result.Document),
				FrontMatter: len(result.FrontMatter) > 0,
			})
		}
		baseLogger.Info("richtext.command.convert_directory.completed",
			"directory", msg.Directory,
			"files", len(results),
		)
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertDirectoryCommand]{
		commands.WithLogger[ConvertDirectoryCommand](baseLogger),
		commands.WithOperation[ConvertDirectoryCommand](directoryOperation),
		commands.WithMessageFields(func(msg ConvertDirectoryCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertDirectoryCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ConvertDirectoryCommand].
func (h *ConvertDirectoryHandler) Execute(ctx context.Context, msg ConvertDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("convert command: write output: %w", err)
	}
	return nil
}
