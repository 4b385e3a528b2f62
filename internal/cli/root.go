// Package cli provides the cobra-based command tree for reprise.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// Version is the build version reported by --version.
const Version = "0.1.0"

// Options holds global options parsed before subcommand dispatch. Each root
// command owns its own instance, so independently built command trees never
// share flag state.
type Options struct {
	Verbose bool
}

// NewRootCmd creates the root cobra command for reprise.
func NewRootCmd() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "reprise",
		Short: "Turn failing executions into regression tests",
		Long: `reprise - turn failing executions into regression tests

Reprise wraps an operation, snapshots its state before every invocation, and
on failure renders a self-contained Go test that replays the exact state and
arguments. Captures can be appended to a test file directly or stored for
later rendering.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.Verbose, "verbose", false, "log diagnostic detail to stderr")

	rootCmd.AddCommand(
		newDemoCmd(opts),
		newCapturesCmd(opts),
	)

	return rootCmd
}

// Execute runs the root command with the given arguments and output writers.
// This is the main entry point from main.go; tests call it directly.
func Execute(stdout, stderr io.Writer, args []string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
