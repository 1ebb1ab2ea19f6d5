package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	convertcmd "github.com/goliatone/go-richtext/internal/commands/convert"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func renderSummary(w io.Writer, source string, outcomes []convertcmd.Outcome, elapsed time.Duration, runErr error) {
	blocks, withMeta := 0, 0
	for _, outcome := range outcomes {
		blocks += outcome.Blocks
		if outcome.FrontMatter {
			withMeta++
		}
	}

	lines := []string{
		titleStyle.Render("richtext convert"),
		dimStyle.Render(source),
		"",
		fmt.Sprintf("files         %d", len(outcomes)),
		fmt.Sprintf("blocks        %d", blocks),
		fmt.Sprintf("front matter  %d", withMeta),
		fmt.Sprintf("elapsed       %s", elapsed.Round(time.Millisecond)),
		"",
	}
	if runErr != nil {
		lines = append(lines, errorStyle.Render("✗ failed: "+runErr.Error()))
	} else {
		lines = append(lines, successStyle.Render("✓ done"))
	}

	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}
