package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stackvity/export-fixer/pkg/stripper"
	"github.com/stackvity/export-fixer/pkg/stripper/encoding"
)

const (
	EnvPrefix         = "EXPORTFIXER"
	DefaultConfigName = "export-fixer"
)

// LoadAndValidate loads configuration from all sources (defaults, file, env,
// flags), validates the merged result and sets up the logger writing to
// logOut. inputPath is the positional argument of the command.
func LoadAndValidate(cfgFile, inputPath, appVersion string, verbose bool, flags *pflag.FlagSet, logOut io.Writer) (stripper.Options, *slog.Logger, error) {
	var opts stripper.Options
	v := viper.New()

	// Temporary logger for errors raised before the level is known.
	tempLogger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelInfo}))

	setDefaults(v)

	// --- Load Config File ---
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		} else {
			tempLogger.Debug("No home directory; skipping user config location", slog.Any("error", err))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			tempLogger.Debug("No configuration file found, using defaults/env/flags.")
		} else {
			used := cfgFile
			if used == "" {
				used = fmt.Sprintf("searched locations for %s.yaml", DefaultConfigName)
			}
			tempLogger.Error("Error reading configuration file", slog.String("path", used), slog.Any("error", err))
			return opts, tempLogger, fmt.Errorf("error reading config file '%s': %w", used, err)
		}
	} else {
		opts.ConfigFilePath = v.ConfigFileUsed()
	}

	// --- Bind Environment Variables ---
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// --- Bind Flags (Highest Priority) ---
	for _, key := range []string{"verbose"} {
		if flag := flags.Lookup(key); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				tempLogger.Error("Error binding flag", slog.String("flag", key), slog.Any("error", err))
				return opts, tempLogger, fmt.Errorf("error binding flag '--%s': %w", key, err)
			}
		}
	}

	if err := v.Unmarshal(&opts); err != nil {
		tempLogger.Error("Error unmarshalling configuration", slog.Any("error", err))
		return opts, tempLogger, fmt.Errorf("error unmarshalling configuration: %w", err)
	}
	opts.AppVersion = appVersion
	opts.InputPath = inputPath

	// An explicit flag always wins over file and env values.
	if flags.Changed("verbose") {
		opts.Verbose = verbose
	}

	// --- Setup Final Logger ---
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logHandler := slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logHandler)
	opts.Logger = logHandler

	if opts.ConfigFilePath != "" {
		logger.Debug("Using configuration file", slog.String("path", opts.ConfigFilePath))
	}

	if err := validateAndDeriveOptions(&opts, logger); err != nil {
		return opts, logger, err
	}

	logger.Debug("Configuration loading and validation complete",
		slog.String("configFile", opts.ConfigFilePath),
		slog.String("missingKey", string(opts.MissingKeyMode)),
		slog.Bool("validate", opts.Validate),
		slog.String("logLevel", logLevel.String()),
	)

	return opts, logger, nil
}

// setDefaults establishes the default values for configuration options in Viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", stripper.DefaultVerbose)
	v.SetDefault("missingKey", string(stripper.DefaultMissingKeyMode))
	v.SetDefault("validate", stripper.DefaultValidate)
	v.SetDefault("defaultEncoding", "")

	v.SetDefault("output.dir", stripper.DefaultOutputDir)
	v.SetDefault("output.name", stripper.DefaultOutputName)
	v.SetDefault("output.bucket", "")
}

// validateAndDeriveOptions performs semantic validation on the populated
// Options. Errors wrap stripper.ErrConfigValidation.
func validateAndDeriveOptions(opts *stripper.Options, logger *slog.Logger) error {
	if opts.InputPath == "" {
		err := fmt.Errorf("%w: input path is required", stripper.ErrConfigValidation)
		logger.Error(err.Error())
		return err
	}

	if !slices.Contains(stripper.AllowedMissingKeyModes, opts.MissingKeyMode) {
		err := fmt.Errorf("%w: invalid value '%s' for key 'missingKey'. Allowed: %v", stripper.ErrConfigValidation, opts.MissingKeyMode, stripper.AllowedMissingKeyModes)
		logger.Error(err.Error(), slog.String("key", "missingKey"), slog.String("value", string(opts.MissingKeyMode)))
		return err
	}

	if opts.DefaultEncoding != "" && !encoding.IsKnownEncoding(opts.DefaultEncoding) {
		err := fmt.Errorf("%w: unknown encoding '%s' for key 'defaultEncoding'", stripper.ErrConfigValidation, opts.DefaultEncoding)
		logger.Error(err.Error(), slog.String("key", "defaultEncoding"), slog.String("value", opts.DefaultEncoding))
		return err
	}

	name := strings.TrimSpace(opts.Output.Name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		err := fmt.Errorf("%w: invalid value '%s' for key 'output.name'. Must be a plain file name", stripper.ErrConfigValidation, opts.Output.Name)
		logger.Error(err.Error(), slog.String("key", "output.name"))
		return err
	}
	opts.Output.Name = name

	if opts.Output.Dir == "" {
		opts.Output.Dir = stripper.DefaultOutputDir
	}
	if opts.Output.Bucket != "" && !strings.Contains(opts.Output.Bucket, "://") {
		err := fmt.Errorf("%w: invalid value '%s' for key 'output.bucket'. Expected a URL such as s3://bucket or file:///dir", stripper.ErrConfigValidation, opts.Output.Bucket)
		logger.Error(err.Error(), slog.String("key", "output.bucket"))
		return err
	}

	return nil
}
