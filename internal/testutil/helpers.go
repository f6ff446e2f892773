package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateDummyFile creates a file with the given content at path, ensuring
// parent directories exist. It returns the cleaned path.
func CreateDummyFile(t *testing.T, path string, content string) string {
	t.Helper()
	fullPath := filepath.Clean(path)
	err := os.MkdirAll(filepath.Dir(fullPath), 0755)
	require.NoError(t, err, "Failed to create directory for dummy file %s", fullPath)
	err = os.WriteFile(fullPath, []byte(content), 0644)
	require.NoError(t, err, "Failed to write dummy file %s", fullPath)
	return fullPath
}

// CreateExport writes lines as a newline-terminated export file in a fresh
// temp directory and returns its path.
func CreateExport(t *testing.T, lines ...string) string {
	t.Helper()
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	return CreateDummyFile(t, filepath.Join(t.TempDir(), "export.json"), content)
}

// DiscardHandler returns a slog handler that drops every record.
func DiscardHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// NewBufferLogger returns a debug-level text logger writing into buf.
func NewBufferLogger(buf io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
