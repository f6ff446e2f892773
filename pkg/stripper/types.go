package stripper

// LineStatus describes what happened to a single export line.
type LineStatus string

const (
	LineStripped   LineStatus = "stripped"
	LineMissingKey LineStatus = "missing_key"
	LineBlank      LineStatus = "blank"
)

// MissingKeyMode defines the behavior for a line that has no `"_id":` key
// followed by a comma.
type MissingKeyMode string

const (
	// MissingKeyPassthrough emits the line unchanged and records a warning.
	MissingKeyPassthrough MissingKeyMode = "passthrough"
	// MissingKeyLegacy reproduces the index arithmetic of the original tool:
	// the comma search starts at the beginning of the line and everything up
	// to and including the first comma is dropped.
	MissingKeyLegacy MissingKeyMode = "legacy"
	// MissingKeyError aborts the run before any output is written.
	MissingKeyError MissingKeyMode = "error"
)

// AllowedMissingKeyModes lists the valid MissingKeyMode values.
var AllowedMissingKeyModes = []MissingKeyMode{MissingKeyPassthrough, MissingKeyLegacy, MissingKeyError}
