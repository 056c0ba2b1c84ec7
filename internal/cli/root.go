// Package cli implements the Cobra command hierarchy for the sver CLI. The
// root command is the entry point for all subcommands and handles
// cross-cutting concerns like logging initialization and exit-code mapping.
package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sver/sver/internal/config"
	"github.com/sver/sver/internal/pipeline"
)

// flagValues holds the parsed global flag values, populated by
// config.BindFlags during command initialization.
var flagValues *config.FlagValues

var rootCmd = &cobra.Command{
	Use:   "sver",
	Short: "Version calculator based on source code",
	Long: `Sver computes a deterministic, content-addressed version for any subtree
of a git repository.

It resolves the subtree's effective source set from the committed index --
declared dependencies, symlink targets, pinned submodule commits -- and
reduces it to a SHA-256 digest that is stable across machines and reruns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := config.ResolveLogLevel(flagValues.Verbose, flagValues.Quiet)
		format := config.ResolveLogFormat()
		config.SetupLogging(level, format)

		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
}

func init() {
	flagValues = config.BindFlags(rootCmd)
}

// Execute runs the root command and returns the process exit code. A
// *pipeline.SverError carries its own code; any other error maps to
// ExitError.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return int(pipeline.ExitSuccess)
}

// extractExitCode determines the process exit code from an error.
func extractExitCode(err error) int {
	if err == nil {
		return int(pipeline.ExitSuccess)
	}
	var sverErr *pipeline.SverError
	if errors.As(err, &sverErr) {
		return int(sverErr.Code)
	}
	return int(pipeline.ExitError)
}

// RootCmd returns the root cobra.Command for testing and subcommand
// registration.
func RootCmd() *cobra.Command {
	return rootCmd
}

// resolveOptions runs the layered option resolution for the given command,
// folding in whichever flags the user set.
func resolveOptions(cmd *cobra.Command) (*config.Options, error) {
	return config.Resolve(config.ResolveOptions{
		Flags: config.FlagOverrides(cmd, flagValues),
	})
}
