package ui

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stackvity/export-fixer/pkg/stripper"
)

func TestRenderSummary_Plain(t *testing.T) {
	valid := false
	report := stripper.Report{
		Summary: stripper.ReportSummary{
			InputPath:       "export.json",
			OutputLocation:  "fixed_formatting.json",
			Encoding:        "utf-8",
			EntriesWritten:  4,
			MissingKeyCount: 1,
			BlankCount:      2,
			ValidJSON:       &valid,
			DurationSeconds: 0.25,
		},
		MissingKeys: []stripper.LineInfo{{Line: 3, Preview: `{"a":1}`}},
	}

	out := RenderSummary(report, false)
	assert.Contains(t, out, "export-fixer summary")
	assert.Contains(t, out, "input         export.json")
	assert.Contains(t, out, "entries       4")
	assert.Contains(t, out, "missing _id   1 (first at line 3)")
	assert.Contains(t, out, "blank lines   2")
	assert.Contains(t, out, "valid JSON    no")
	assert.Contains(t, out, "duration      250ms")
	assert.NotContains(t, out, "\x1b[", "plain output must not carry ANSI sequences")
}

func TestRenderSummary_Styled(t *testing.T) {
	valid := true
	longPath := "/var/backups/mongo/" + strings.Repeat("nested/", 12) + "users-export.json"
	report := stripper.Report{
		Summary: stripper.ReportSummary{
			InputPath:       longPath,
			OutputLocation:  "fixed_formatting.json",
			Encoding:        "utf-8",
			EntriesWritten:  4,
			MissingKeyCount: 1,
			ValidJSON:       &valid,
			DurationSeconds: 0.25,
		},
		MissingKeys: []stripper.LineInfo{{Line: 3}},
	}

	out := RenderSummary(report, true)
	assert.Contains(t, out, "export-fixer summary")
	assert.Contains(t, out, longPath, "long values must stay on one line")
	assert.Contains(t, out, "fixed_formatting.json")
	assert.Contains(t, out, "1 (first at line 3)")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "250ms")
	for _, label := range []string{"input", "output", "encoding", "entries", "missing _id", "valid JSON", "duration"} {
		assert.Contains(t, out, label)
	}
	assert.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), 8, "one line per row")
}

func TestRenderSummary_OmitsEmptyRows(t *testing.T) {
	out := RenderSummary(stripper.Report{Summary: stripper.ReportSummary{EntriesWritten: 1}}, false)
	assert.NotContains(t, out, "missing _id")
	assert.NotContains(t, out, "blank lines")
	assert.NotContains(t, out, "valid JSON")
}

func TestRenderError(t *testing.T) {
	assert.Equal(t, stripper.MsgInputNotFound+"\n", RenderError(stripper.MsgInputNotFound, false))
	assert.Contains(t, RenderError(stripper.MsgInputNotFound, true), stripper.MsgInputNotFound)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500µs", formatDuration(500*time.Microsecond))
	assert.Equal(t, "12ms", formatDuration(12*time.Millisecond))
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.False(t, IsTerminal(f))
}
