package stripper

// Constants defining default values for configuration options.
// These are used when setting up Viper defaults in internal/cli/config.
const (
	// DefaultOutputName is the fixed name of the file the array is persisted to.
	DefaultOutputName = "fixed_formatting.json"
	// DefaultOutputDir is the directory the output file is written to (the working directory).
	DefaultOutputDir = "."
	// DefaultMissingKeyMode is the default handling of lines without the key.
	DefaultMissingKeyMode = MissingKeyPassthrough
	// DefaultValidate is the default state of the post-run JSON validity check.
	DefaultValidate = false
	// DefaultVerbose is the default state for verbose logging.
	DefaultVerbose = false
)

// Lexical markers used by the line transformation.
const (
	// FieldKey is the literal key marker located in every export line.
	FieldKey = `"_id":`
	// Separator joins array entries and terminates the stripped value.
	Separator = ","
)

// ReportSchemaVersion indicates the version of the JSON report structure.
const ReportSchemaVersion = "1.0"
