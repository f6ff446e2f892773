package stripper

import (
	"time"
)

// Report summarizes the result of a single Run.
type Report struct {
	Summary     ReportSummary `json:"summary"`
	MissingKeys []LineInfo    `json:"missingKeys"`
}

// ReportSummary contains aggregated statistics for a Run.
type ReportSummary struct {
	InputPath       string    `json:"inputPath"`
	OutputLocation  string    `json:"outputLocation"`
	ConfigFilePath  string    `json:"configFilePath,omitempty"`
	AppVersion      string    `json:"appVersion,omitempty"`
	Encoding        string    `json:"encoding"`
	BinaryInput     bool      `json:"binaryInput"`
	LinesRead       int       `json:"linesRead"`
	EntriesWritten  int       `json:"entriesWritten"`
	StrippedCount   int       `json:"strippedCount"`
	MissingKeyCount int       `json:"missingKeyCount"`
	BlankCount      int       `json:"blankCount"`
	BytesWritten    int       `json:"bytesWritten"`
	ValidJSON       *bool     `json:"validJSON,omitempty"` // Set only when validation is enabled
	DurationSeconds float64   `json:"durationSeconds"`
	Timestamp       time.Time `json:"timestamp"`
	SchemaVersion   string    `json:"schemaVersion,omitempty"`
}

// LineInfo identifies a line that did not contain the stripped key.
type LineInfo struct {
	Line    int    `json:"line"`
	Preview string `json:"preview"`
}

const previewLen = 80

// preview shortens a line for logs and the report.
func preview(line string) string {
	r := []rune(line)
	if len(r) <= previewLen {
		return line
	}
	return string(r[:previewLen]) + "..."
}
