package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/stackvity/export-fixer/internal/cli/hooks"
	"github.com/stackvity/export-fixer/internal/cli/ui"
	"github.com/stackvity/export-fixer/pkg/stripper"
	"github.com/stackvity/export-fixer/pkg/stripper/sink"
)

// Run orchestrates a single export-fixer run after configuration loading:
// it opens the output sink, runs the library and reports the outcome on
// stderr. The array itself goes to stdout.
func Run(ctx context.Context, opts stripper.Options, logger *slog.Logger, stdout, stderr io.Writer) error {
	styled := isTerminal(stderr)

	out, err := sink.Open(ctx, opts.Output.Dir, opts.Output.Name, opts.Output.Bucket)
	if err != nil {
		err = fmt.Errorf("%w: %w", stripper.ErrOutputWriteFailure, err)
		logger.Error("Failed to open output", slog.Any("error", err))
		_, _ = io.WriteString(stderr, ui.RenderError(stripper.UserMessage(err), styled))
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			logger.Warn("Failed to close output", slog.String("location", out.Location()), slog.Any("error", closeErr))
		}
	}()

	cliHooks := hooks.NewCLIHooks(logger, opts.Verbose)
	opts.Stdout = stdout
	opts.Sink = out
	opts.EventHooks = cliHooks

	report, err := stripper.Run(ctx, opts)
	if err != nil {
		_, _ = io.WriteString(stderr, ui.RenderError(stripper.UserMessage(err), styled))
		return err
	}

	if styled {
		_, _ = io.WriteString(stderr, ui.RenderSummary(report, true))
		return nil
	}
	logger.Info("Export fixed",
		slog.String("input", report.Summary.InputPath),
		slog.String("output", report.Summary.OutputLocation),
		slog.Int("entries", report.Summary.EntriesWritten),
		slog.Int("missingKey", cliHooks.Count(stripper.LineMissingKey)),
		slog.Int("blank", cliHooks.Count(stripper.LineBlank)),
		slog.String("version", report.Summary.AppVersion),
	)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f)
}
