package stripper

import "errors"

// Fixed, user-facing messages for the two failure kinds a run can report.
const (
	MsgInputNotFound      = "The specified input file was not found."
	MsgOutputWriteFailure = "The output file could not be written."
)

// Exported error variables. Callers can check against these using errors.Is.
var (
	// ErrInputNotFound indicates the source export file does not exist.
	// No output is written when this is returned.
	ErrInputNotFound = errors.New("input file not found")

	// ErrInputRead indicates the source file exists but could not be read
	// (permissions, a directory, I/O failure) or could not be decoded to UTF-8.
	ErrInputRead = errors.New("failed to read input file")

	// ErrOutputWriteFailure indicates the destination could not be written.
	// The write is not retried.
	ErrOutputWriteFailure = errors.New("failed to write output file")

	// ErrMissingKey is returned when MissingKeyMode is "error" and a line
	// does not contain the stripped key followed by a separator.
	ErrMissingKey = errors.New("line does not contain the _id key")

	// ErrConfigValidation indicates that the provided Options failed validation.
	ErrConfigValidation = errors.New("invalid configuration options provided")
)

// UserMessage maps an error returned by Run to the fixed message printed for
// it. Errors of other kinds fall back to err.Error().
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInputNotFound):
		return MsgInputNotFound
	case errors.Is(err, ErrOutputWriteFailure):
		return MsgOutputWriteFailure
	default:
		return err.Error()
	}
}
