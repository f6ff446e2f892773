package stripper

import (
	"context"
	"io"
	"log/slog"

	"github.com/stackvity/export-fixer/pkg/stripper/encoding"
)

// OutputConfig defines where the resulting array is persisted.
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Name   string `mapstructure:"name"`
	Bucket string `mapstructure:"bucket"` // gocloud blob URI; empty means a local file in Dir
}

// Hooks defines callbacks for status updates during a run.
type Hooks interface {
	OnLineProcessed(lineNo int, status LineStatus, message string) error
	OnRunComplete(report Report) error
}

// NoOpHooks provides a default, do-nothing implementation of the Hooks interface.
type NoOpHooks struct{}

// OnLineProcessed implements the Hooks interface. It performs no action.
func (h *NoOpHooks) OnLineProcessed(lineNo int, status LineStatus, message string) error {
	return nil
}

// OnRunComplete implements the Hooks interface. It performs no action.
func (h *NoOpHooks) OnRunComplete(report Report) error { return nil }

// Sink persists the final array. Implementations live in pkg/stripper/sink.
type Sink interface {
	Write(ctx context.Context, data []byte) error
	// Location describes where Write puts the data, for logs and the report.
	Location() string
}

// Options holds all configuration for a Run.
type Options struct {
	// --- Core Paths ---
	InputPath string       `mapstructure:"-"` // Required: path to the export file (the positional argument)
	Output    OutputConfig `mapstructure:"output"`

	// --- Application Info ---
	AppVersion     string `mapstructure:"-"`
	ConfigFilePath string `mapstructure:"-"` // Path to the loaded config file (for reporting)

	// --- Behavior & Control ---
	Verbose         bool           `mapstructure:"verbose"`
	MissingKeyMode  MissingKeyMode `mapstructure:"missingKey"`
	Validate        bool           `mapstructure:"validate"`        // Check the final array with gjson
	DefaultEncoding string         `mapstructure:"defaultEncoding"` // IANA name used when detection is uncertain

	// --- Injected Dependencies ---
	Stdout          io.Writer        `mapstructure:"-"` // Required: receives the array literal
	Sink            Sink             `mapstructure:"-"` // Required: persists the array literal
	EventHooks      Hooks            `mapstructure:"-"` // Optional: defaults to NoOpHooks
	Logger          slog.Handler     `mapstructure:"-"` // Required: logging backend
	EncodingHandler encoding.Handler `mapstructure:"-"` // Optional: defaults to the charset handler
}
