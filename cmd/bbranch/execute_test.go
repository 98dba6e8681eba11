package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GiannhsR/B-branch/pkg/gitbranch"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeRunner struct {
	repo       bool
	refs       []gitbranch.Ref
	refsErr    error
	contains   string
	noContains string
	patterns   []string
}

func (f *fakeRunner) IsGitRepo() (bool, error) { return f.repo, nil }

func (f *fakeRunner) Refs(patterns []string, contains, noContains string) ([]gitbranch.Ref, error) {
	f.patterns, f.contains, f.noContains = patterns, contains, noContains
	return f.refs, f.refsErr
}

func (f *fakeRunner) RefExists(ref string) bool { return ref == "refs/heads/main" }

func (f *fakeRunner) AheadBehind(_, ref string) (int, int, error) {
	if ref == "refs/heads/feature" {
		return 2, 1, nil
	}
	return 0, 0, nil
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		repo: true,
		refs: []gitbranch.Ref{
			{Name: "refs/heads/main", Committed: testNow.Add(-50 * time.Hour), Head: true},
			{Name: "refs/heads/feature", Committed: testNow.Add(-26 * time.Hour)},
			{Name: "refs/remotes/origin/main", Committed: testNow.Add(-74 * time.Hour)},
		},
	}
}

// useRunner swaps the git runner and clock for the duration of a test.
func useRunner(t *testing.T, r gitbranch.GitRunner) {
	t.Helper()
	oldRunner, oldNow := newRunner, now
	newRunner = func() gitbranch.GitRunner { return r }
	now = func() time.Time { return testNow }
	t.Cleanup(func() { newRunner, now = oldRunner, oldNow })
}

func executeCommand(args ...string) (string, string, error) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	resetFlags(rootCmd)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestVersionFlag(t *testing.T) {
	useRunner(t, newFakeRunner())

	for _, arg := range []string{"--version", "-v"} {
		stdout, _, err := executeCommand(arg)
		require.NoError(t, err)
		assert.Equal(t, "bbranch version dev\n", stdout)
	}
}

func TestHelpFlag(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bbranch")
	assert.Contains(t, stdout, "--print-top")
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"version with other flag", []string{"--version", "--all"}, "You cannot use --version with any other option"},
		{"contains and no-contains", []string{"--contains", "a", "--no-contains", "b"}, "You cannot use both --contains and --no-contains"},
		{"all and remote", []string{"-a", "-r"}, "You cannot use both --all and --remote"},
		{"bad sort", []string{"--sort", "DATE"}, "Value for --sort is missing. Valid values are: date, name, ahead, behind"},
		{"empty sort", []string{"--sort="}, "Value for --sort is missing"},
		{"zero print-top", []string{"--print-top", "0"}, "Value for --print-top must be greater than 0"},
		{"negative print-top", []string{"--print-top=-3"}, "Value for --print-top must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useRunner(t, newFakeRunner())

			stdout, stderr, err := executeCommand(tt.args...)
			require.ErrorIs(t, err, ErrInvalidUsage)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantErr)
			assert.Equal(t, 1, bytes.Count([]byte(stderr), []byte("\n")), "exactly one message expected")
		})
	}
}

func TestValidationErrors_RepeatedRuns(t *testing.T) {
	useRunner(t, newFakeRunner())

	_, stderr, err := executeCommand("--all", "--remote")
	require.ErrorIs(t, err, ErrInvalidUsage)
	assert.Contains(t, stderr, "You cannot use both --all and --remote")

	// flags from the previous run must not leak into this one
	_, stderr, err = executeCommand("--contains", "a", "--no-contains", "b")
	require.ErrorIs(t, err, ErrInvalidUsage)
	assert.Contains(t, stderr, "You cannot use both --contains and --no-contains")
	assert.NotContains(t, stderr, "--remote")

	stdout, stderr, err := executeCommand("--sort", "name")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "feature")
}

func TestValidationError_PrintTopNotANumber(t *testing.T) {
	useRunner(t, newFakeRunner())

	stdout, stderr, err := executeCommand("--print-top", "abc")
	require.ErrorIs(t, err, ErrInvalidUsage)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr, "a non-numeric --print-top fails without a message")
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--verbose"}},
		{"missing flag value", []string{"--sort"}},
		{"positional argument", []string{"main"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useRunner(t, newFakeRunner())

			_, _, err := executeCommand(tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidUsage)
			assert.NotEqual(t, ErrInvalidUsage, err)
		})
	}
}

func TestListBranches(t *testing.T) {
	useRunner(t, newFakeRunner())

	stdout, stderr, err := executeCommand()
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "main")
	assert.Contains(t, stdout, "feature")
	assert.Contains(t, stdout, "1 day ago")
	assert.Less(t, bytes.Index([]byte(stdout), []byte("feature")), bytes.Index([]byte(stdout), []byte("2 days ago")),
		"newest branch is listed first")
}

func TestListBranches_Flags(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantPatterns   []string
		wantContains   string
		wantNoContains string
	}{
		{"default scope", nil, []string{"refs/heads"}, "", ""},
		{"all", []string{"--all"}, []string{"refs/heads", "refs/remotes"}, "", ""},
		{"remote", []string{"--remote"}, []string{"refs/remotes"}, "", ""},
		{"contains", []string{"--contains", "abc123"}, []string{"refs/heads"}, "abc123", ""},
		{"no-contains", []string{"-n", "main"}, []string{"refs/heads"}, "", "main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner()
			useRunner(t, runner)

			_, _, err := executeCommand(tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPatterns, runner.patterns)
			assert.Equal(t, tt.wantContains, runner.contains)
			assert.Equal(t, tt.wantNoContains, runner.noContains)
		})
	}
}

func TestListBranches_PrintTop(t *testing.T) {
	useRunner(t, newFakeRunner())

	stdout, _, err := executeCommand("--sort", "name", "--print-top", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "feature")
	assert.NotContains(t, stdout, "origin/main")
	// base line, header and a single branch
	assert.Equal(t, 3, bytes.Count([]byte(stdout), []byte("\n")))
}

func TestListBranches_Base(t *testing.T) {
	useRunner(t, newFakeRunner())

	stdout, _, err := executeCommand()
	require.NoError(t, err)
	assert.Contains(t, stdout, "main\n")
	assert.Contains(t, stdout, "base:")

	t.Setenv(EnvBase, "develop")
	stdout, _, err = executeCommand()
	require.NoError(t, err)
	assert.Contains(t, stdout, "develop\n")
}

func TestListBranches_NotARepository(t *testing.T) {
	runner := newFakeRunner()
	runner.repo = false
	useRunner(t, runner)

	_, _, err := executeCommand()
	assert.ErrorIs(t, err, gitbranch.ErrNotGitRepo)
}

func TestListBranches_GitFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.refsErr = errors.New("fatal: bad object")
	useRunner(t, runner)

	_, _, err := executeCommand()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad object")
	assert.NotErrorIs(t, err, ErrInvalidUsage)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStderr string
	}{
		{"success", nil, exitOK, ""},
		{"validation failure", ErrInvalidUsage, exitUsage, ""},
		{"flag error", errors.Join(ErrInvalidUsage, errors.New("unknown flag: --verbose")), exitUsage, "unknown flag: --verbose"},
		{"runtime failure", gitbranch.ErrNotGitRepo, exitFailure, "Error: not a git repository"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			assert.Equal(t, tt.wantCode, exitCode(tt.err, &stderr))
			if tt.wantStderr == "" {
				assert.Empty(t, stderr.String())
			} else {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}
