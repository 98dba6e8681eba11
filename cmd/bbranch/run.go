package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GiannhsR/B-branch/pkg/errsink"
	"github.com/GiannhsR/B-branch/pkg/flags"
	"github.com/GiannhsR/B-branch/pkg/gitbranch"
	"github.com/GiannhsR/B-branch/pkg/output"
	"github.com/GiannhsR/B-branch/pkg/validate"
)

// EnvBase overrides the branch that ahead/behind counts are measured against.
const EnvBase = "BBRANCH_BASE"

// ErrInvalidUsage is returned when the command line is rejected.
// The process exits with code 2.
var ErrInvalidUsage = errors.New("invalid usage")

var (
	newRunner = func() gitbranch.GitRunner {
		return &gitbranch.RealGitRunner{Log: logger}
	}
	now = time.Now
)

func runBranches(cmd *cobra.Command, _ []string) error {
	options := collectOptions(cmd.Flags())

	var sink errsink.Collector
	if result := validate.Arguments(options, &sink); !result.OK() {
		logger.Debug("arguments rejected", zap.Strings("messages", sink.Messages()))
		output.PrintErrors(cmd.ErrOrStderr(), sink.Messages())
		return ErrInvalidUsage
	}

	if options.Has(flags.Version) {
		output.PrintVersion(cmd.OutOrStdout(), Version)
		return nil
	}

	lister := &gitbranch.Lister{
		Runner: newRunner(),
		Base:   os.Getenv(EnvBase),
	}
	base := lister.ResolveBase()

	q := queryFromOptions(options)
	logger.Debug("listing branches",
		zap.String("base", base),
		zap.Int("scope", int(q.Scope)),
		zap.String("sort", q.SortBy),
		zap.Int("top", q.Top),
	)

	branches, err := lister.List(q)
	if err != nil {
		return err
	}
	return output.PrintBranches(cmd.OutOrStdout(), branches, base, now())
}
