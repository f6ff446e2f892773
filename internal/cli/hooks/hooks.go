package hooks

import (
	"context"
	"log/slog"
	"sync"

	"github.com/stackvity/export-fixer/pkg/stripper"
)

// CLIHooks implements the stripper.Hooks interface, bridging library events
// to the CLI logger.
type CLIHooks struct {
	logger         *slog.Logger
	verboseEnabled bool

	mu     sync.Mutex
	counts map[stripper.LineStatus]int
}

// NewCLIHooks creates a new CLIHooks instance.
func NewCLIHooks(logger *slog.Logger, verboseEnabled bool) *CLIHooks {
	return &CLIHooks{
		logger:         logger,
		verboseEnabled: verboseEnabled,
		counts:         make(map[stripper.LineStatus]int),
	}
}

// OnLineProcessed records the outcome of a line. In verbose mode every line
// is logged at debug level; missing keys are already reported by the library.
func (h *CLIHooks) OnLineProcessed(lineNo int, status stripper.LineStatus, message string) error {
	h.mu.Lock()
	h.counts[status]++
	h.mu.Unlock()

	if !h.verboseEnabled {
		return nil
	}
	attrs := []slog.Attr{
		slog.Int("line", lineNo),
		slog.String("status", string(status)),
	}
	if message != "" {
		attrs = append(attrs, slog.String("message", message))
	}
	h.logger.LogAttrs(context.Background(), slog.LevelDebug, "Line processed", attrs...)
	return nil
}

// OnRunComplete logs the final counters at debug level.
func (h *CLIHooks) OnRunComplete(report stripper.Report) error {
	h.logger.Debug("Run complete",
		slog.Int("entries", report.Summary.EntriesWritten),
		slog.Int("missingKey", report.Summary.MissingKeyCount),
		slog.Int("blank", report.Summary.BlankCount),
		slog.Float64("durationSeconds", report.Summary.DurationSeconds),
	)
	return nil
}

// Count returns how many lines were reported with status.
func (h *CLIHooks) Count(status stripper.LineStatus) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[status]
}
