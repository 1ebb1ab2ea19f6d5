// Command richtext converts Markdoc-style markup trees and markdown files
// into editor document JSON.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-richtext/cmd/richtext/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "richtext",
		Short: "Convert markup trees into editor documents",
		Long: `richtext converts Markdoc-style markup trees (JSON) and markdown files into
the node tree of a structured rich-text editor, routing custom tags through
registered component schemas.`,
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newConvertCommand())
	return root
}
