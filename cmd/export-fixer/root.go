package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stackvity/export-fixer/internal/cli"
	"github.com/stackvity/export-fixer/internal/cli/config"
)

var (
	// These are set during build time using -ldflags
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = newRootCmd()

// newRootCmd builds the root command. Tests use it to get an isolated instance.
func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "export-fixer <export-file>",
		Short: "Strips _id from a MongoDB JSON export and wraps it in a JSON array.",
		Long: `export-fixer reads a MongoDB export with one JSON document per line,
removes the "_id" field from every document and wraps the documents into a
single JSON array. The array is printed to standard output and written to
fixed_formatting.json in the working directory, ready to be imported into a
document database.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// From here on failures are reported by cli.Run and the logger.
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			opts, logger, err := config.LoadAndValidate(cfgFile, args[0], version, verbose, cmd.Flags(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return cli.Run(ctx, opts, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetVersionTemplate(`{{.Name}} version {{.Version}}` + "\n")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default is ./export-fixer.yaml or $HOME/.config/export-fixer/)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging output")
	return cmd
}

// Execute runs the root command and exits non-zero when it fails.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
