package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/stackvity/export-fixer/pkg/stripper"
)

var (
	HeaderStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	LabelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	StatusStyleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	StatusStyleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	StatusStyleFailed = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RenderSummary formats the final report for a terminal. When styled is
// false the same lines are produced without ANSI sequences.
func RenderSummary(report stripper.Report, styled bool) string {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}
	row := func(label, value string) string {
		if !styled {
			return fmt.Sprintf("%-14s%s", label, value)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), value)
	}

	s := report.Summary
	lines := []string{
		render(HeaderStyle, "export-fixer summary"),
		row("input", s.InputPath),
		row("output", s.OutputLocation),
		row("encoding", s.Encoding),
		row("entries", render(StatusStyleOK, fmt.Sprintf("%d", s.EntriesWritten))),
	}

	if s.MissingKeyCount > 0 {
		lines = append(lines, row("missing _id", render(StatusStyleWarn, fmt.Sprintf("%d (first at line %d)", s.MissingKeyCount, report.MissingKeys[0].Line))))
	}
	if s.BlankCount > 0 {
		lines = append(lines, row("blank lines", fmt.Sprintf("%d", s.BlankCount)))
	}
	if s.ValidJSON != nil {
		if *s.ValidJSON {
			lines = append(lines, row("valid JSON", render(StatusStyleOK, "yes")))
		} else {
			lines = append(lines, row("valid JSON", render(StatusStyleFailed, "no")))
		}
	}
	lines = append(lines, row("duration", formatDuration(time.Duration(s.DurationSeconds*float64(time.Second)))))

	return strings.Join(lines, "\n") + "\n"
}

// RenderError formats the fixed failure message for a terminal.
func RenderError(message string, styled bool) string {
	if !styled {
		return message + "\n"
	}
	return StatusStyleFailed.Render(message) + "\n"
}

// formatDuration formats duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
