// Package stripper turns a MongoDB JSON export (one document per line) into a
// single JSON array with the "_id" pair removed from every document. The
// transformation is lexical: lines are never parsed as JSON.
package stripper

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/stackvity/export-fixer/pkg/stripper/encoding"
)

// Run reads the export at opts.InputPath, strips the key from every line,
// prints the resulting array to opts.Stdout and persists it through opts.Sink.
func Run(ctx context.Context, opts Options) (Report, error) {
	if err := validateOptions(&opts); err != nil {
		return Report{}, err
	}
	logger := slog.New(opts.Logger)
	start := time.Now()

	report := Report{
		Summary: ReportSummary{
			InputPath:      opts.InputPath,
			OutputLocation: opts.Sink.Location(),
			ConfigFilePath: opts.ConfigFilePath,
			AppVersion:     opts.AppVersion,
			Timestamp:      start,
			SchemaVersion:  ReportSchemaVersion,
		},
		MissingKeys: []LineInfo{},
	}

	content, err := readInput(opts.InputPath)
	if err != nil {
		logger.Error("Failed to read input", slog.String("path", opts.InputPath), slog.Any("error", err))
		return report, err
	}

	if opts.EncodingHandler.IsBinary(content) {
		report.Summary.BinaryInput = true
		logger.Warn("Input looks like binary data; processing it as text anyway", slog.String("path", opts.InputPath))
	}
	text, encName, certain, err := opts.EncodingHandler.DetectAndDecode(content)
	if err != nil {
		err = fmt.Errorf("%w: '%s': %w", ErrInputRead, opts.InputPath, err)
		logger.Error("Failed to decode input", slog.Any("error", err))
		return report, err
	}
	report.Summary.Encoding = encName
	logger.Debug("Decoded input", slog.String("encoding", encName), slog.Bool("certain", certain), slog.Int("bytes", len(content)))

	entries, err := stripLines(ctx, text, opts, logger, &report)
	if err != nil {
		return report, err
	}

	doc := BuildArray(entries)
	report.Summary.EntriesWritten = len(entries)

	if opts.Validate {
		valid := gjson.Valid(doc)
		report.Summary.ValidJSON = &valid
		if !valid {
			logger.Warn("Resulting array is not valid JSON; writing it unchanged")
		}
	}

	if _, err := fmt.Fprintln(opts.Stdout, doc); err != nil {
		err = fmt.Errorf("failed to write to standard output: %w", err)
		logger.Error(err.Error())
		return report, err
	}

	if err := ctx.Err(); err != nil {
		logger.Info("Run cancelled before persisting output")
		return report, err
	}
	if err := opts.Sink.Write(ctx, []byte(doc)); err != nil {
		err = fmt.Errorf("%w: %w", ErrOutputWriteFailure, err)
		logger.Error("Failed to persist output", slog.String("location", opts.Sink.Location()), slog.Any("error", err))
		return report, err
	}
	report.Summary.BytesWritten = len(doc)
	report.Summary.DurationSeconds = time.Since(start).Seconds()

	logger.Debug("Output persisted", slog.String("location", opts.Sink.Location()), slog.Int("bytes", len(doc)))

	if hookErr := opts.EventHooks.OnRunComplete(report); hookErr != nil {
		logger.Warn("Error reported by OnRunComplete hook", slog.String("hookError", hookErr.Error()))
	}
	return report, nil
}

// validateOptions checks required fields and fills in optional dependencies.
func validateOptions(opts *Options) error {
	if opts.Logger == nil {
		return fmt.Errorf("%w: Logger implementation cannot be nil", ErrConfigValidation)
	}
	if opts.InputPath == "" {
		return fmt.Errorf("%w: input path cannot be empty", ErrConfigValidation)
	}
	if opts.Stdout == nil {
		return fmt.Errorf("%w: Stdout writer cannot be nil", ErrConfigValidation)
	}
	if opts.Sink == nil {
		return fmt.Errorf("%w: Sink implementation cannot be nil", ErrConfigValidation)
	}
	if opts.MissingKeyMode == "" {
		opts.MissingKeyMode = DefaultMissingKeyMode
	}
	if !slices.Contains(AllowedMissingKeyModes, opts.MissingKeyMode) {
		return fmt.Errorf("%w: invalid missing key mode '%s'. Allowed: %v", ErrConfigValidation, opts.MissingKeyMode, AllowedMissingKeyModes)
	}
	if opts.EventHooks == nil {
		opts.EventHooks = &NoOpHooks{}
	}
	if opts.EncodingHandler == nil {
		opts.EncodingHandler = encoding.NewCharsetHandler(opts.DefaultEncoding)
	}
	return nil
}

// readInput loads the whole export file, mapping a missing file to ErrInputNotFound.
func readInput(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err == nil {
		return content, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: '%s'", ErrInputNotFound, path)
	}
	return nil, fmt.Errorf("%w: '%s': %w", ErrInputRead, path, err)
}

// stripLines applies StripLine to every non-blank line of text and records
// per-line outcomes in report.
func stripLines(ctx context.Context, text []byte, opts Options, logger *slog.Logger, report *Report) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(text))
	// A single export line can hold an arbitrarily large document.
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)

	entries := make([]string, 0, bytes.Count(text, []byte{'\n'})+1)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			logger.Info("Run cancelled while processing lines", slog.Int("line", lineNo))
			return nil, err
		}
		lineNo++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			report.Summary.BlankCount++
			notify(opts.EventHooks, logger, lineNo, LineBlank, "")
			continue
		}

		out, ok := StripLine(line, opts.MissingKeyMode)
		if !ok {
			if opts.MissingKeyMode == MissingKeyError {
				err := fmt.Errorf("%w: line %d", ErrMissingKey, lineNo)
				logger.Error(err.Error(), slog.String("preview", preview(line)))
				return nil, err
			}
			report.Summary.MissingKeyCount++
			report.MissingKeys = append(report.MissingKeys, LineInfo{Line: lineNo, Preview: preview(line)})
			logger.Warn("Line has no _id key followed by a separator",
				slog.Int("line", lineNo),
				slog.String("mode", string(opts.MissingKeyMode)),
				slog.String("preview", preview(line)))
			notify(opts.EventHooks, logger, lineNo, LineMissingKey, string(opts.MissingKeyMode))
		} else {
			report.Summary.StrippedCount++
			notify(opts.EventHooks, logger, lineNo, LineStripped, "")
		}
		entries = append(entries, out)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", ErrInputRead, opts.InputPath, err)
	}

	report.Summary.LinesRead = lineNo
	return entries, nil
}

func notify(hooks Hooks, logger *slog.Logger, lineNo int, status LineStatus, message string) {
	if err := hooks.OnLineProcessed(lineNo, status, message); err != nil {
		logger.Warn("Error reported by OnLineProcessed hook", slog.Int("line", lineNo), slog.String("hookError", err.Error()))
	}
}
