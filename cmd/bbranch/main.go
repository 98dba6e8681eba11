package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GiannhsR/B-branch/pkg/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var logger = zap.NewNop()

func main() {
	logger = logging.FromEnv()
	code := exitCode(rootCmd.Execute(), os.Stderr)
	_ = logger.Sync()
	os.Exit(code)
}

// exitCode maps the error returned by the root command to a process exit code,
// printing it unless it was already reported.
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ErrInvalidUsage):
		// Bare ErrInvalidUsage means the validator already printed its message.
		if err != ErrInvalidUsage {
			fmt.Fprintf(stderr, "Error: %v\nRun 'bbranch --help' for usage.\n", err)
		}
		return exitUsage
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
}

var rootCmd = &cobra.Command{
	Use:   "bbranch",
	Short: "Show git branches with ahead/behind counts and last commit dates",
	Long: `bbranch lists git branches together with their last commit date and how
many commits each is ahead of and behind a base branch.

The base branch is taken from BBRANCH_BASE, otherwise main, master or HEAD.
Set BBRANCH_DEBUG=1 to log the git commands being run.

Examples:
  bbranch                          # Local branches, newest first
  bbranch --all --sort name        # Local and remote branches by name
  bbranch --remote --print-top 5   # Five most recently updated remote branches
  bbranch --contains a1b2c3d       # Branches that include a commit
  bbranch --no-contains main       # Branches not yet merged into main`,
	Args:          usageArgs(cobra.NoArgs),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runBranches,
}

func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrInvalidUsage, err)
	})
}

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidUsage, err)
		}
		return nil
	}
}
