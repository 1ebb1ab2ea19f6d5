package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-richtext/cmd/richtext/internal/bootstrap"
	"github.com/goliatone/go-richtext/internal/commands"
	convertcmd "github.com/goliatone/go-richtext/internal/commands/convert"
)

type convertFlags struct {
	format        string
	components    string
	extensions    string
	hardBreaks    bool
	frontMatter   bool
	nestedLists   bool
	validateProps bool
	pattern       string
	recursive     bool
	timeout       time.Duration
	logProvider   string
	logLevel      string
	logFormat     string
	summary       bool
}

func newConvertCommand() *cobra.Command {
	flags := convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert <path>",
		Short: "Convert a file or a directory of markdown files",
		Long: `Convert a markup tree (.json) or markdown file (.md) and print the editor
document as JSON. When path is a directory every markdown file below it is
converted and printed as a JSON array.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), args[0], flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.format, "format", "", "Source format: markup or markdown (default: from file extension)")
	f.StringVar(&flags.components, "components", "", "JSON file with component definitions")
	f.StringVar(&flags.extensions, "extensions", "", "Comma separated markdown extensions (gfm, table, strikethrough, linkify, tasklist)")
	f.BoolVar(&flags.hardBreaks, "hard-breaks", false, "Treat markdown soft line breaks as hard breaks")
	f.BoolVar(&flags.frontMatter, "front-matter", true, "Split and decode markdown front matter")
	f.BoolVar(&flags.nestedLists, "nested-lists", false, "Keep nested lists inside list items")
	f.BoolVar(&flags.validateProps, "validate-props", false, "Validate component props against their JSON schema")
	f.StringVar(&flags.pattern, "pattern", "*.md", "Glob used to discover files in directories")
	f.BoolVar(&flags.recursive, "recursive", true, "Walk sub-directories")
	f.DurationVar(&flags.timeout, "timeout", 0, "Abort the conversion after this duration (0 = no limit)")
	f.StringVar(&flags.logProvider, "logger", "console", "Log provider: console or gologger")
	f.StringVar(&flags.logLevel, "log-level", "warn", "Minimum log level")
	f.StringVar(&flags.logFormat, "log-format", "", "go-logger output format: json, console or pretty")
	f.BoolVar(&flags.summary, "summary", false, "Print a conversion summary to stderr")
	return cmd
}

func runConvert(ctx context.Context, path string, flags convertFlags, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	module, err := moduleBuilder(bootstrap.Options{
		ComponentsFile: flags.components,
		Extensions:     bootstrap.SplitList(flags.extensions),
		HardBreaks:     flags.hardBreaks,
		FrontMatter:    flags.frontMatter,
		NestedLists:    flags.nestedLists,
		ValidateProps:  flags.validateProps,
		Pattern:        flags.pattern,
		Recursive:      flags.recursive,
		Timeout:        flags.timeout,
		LogProvider:    flags.logProvider,
		LogLevel:       flags.logLevel,
		LogFormat:      flags.logFormat,
		LogWriter:      stderr,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	var outcomes []convertcmd.Outcome
	set, err := convertcmd.RegisterConvertCommands(nil, module.Runtime, module.Provider,
		convertcmd.WithIO(convertcmd.IO{
			Output:  stdout,
			Observe: func(o convertcmd.Outcome) { outcomes = append(outcomes, o) },
		}),
		convertcmd.WithFileHandlerOptions(commands.WithTimeout[convertcmd.ConvertFileCommand](module.Config.Conversion.Timeout)),
		convertcmd.WithDirectoryHandlerOptions(commands.WithTimeout[convertcmd.ConvertDirectoryCommand](module.Config.Conversion.Timeout)),
	)
	if err != nil {
		return err
	}

	started := time.Now()
	if info.IsDir() {
		err = set.Directory.Execute(ctx, convertcmd.ConvertDirectoryCommand{Directory: path})
	} else {
		err = set.File.Execute(ctx, convertcmd.ConvertFileCommand{Path: path, Format: flags.format})
	}

	if flags.summary {
		renderSummary(stderr, path, outcomes, time.Since(started), err)
	}
	if err != nil {
		module.Logger.Error("richtext.cli.convert.failed", "path", path, "error", err)
		return fmt.Errorf("convert %s: %w", path, err)
	}
	return nil
}
