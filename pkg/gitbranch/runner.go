package gitbranch

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Ref is a single line of 'git for-each-ref' output.
type Ref struct {
	Name      string    // full refname, e.g. "refs/remotes/origin/main"
	Committed time.Time // committer date of the tip commit
	Head      bool      // checked out in the current worktree
}

// GitRunner abstracts git command execution for testability.
type GitRunner interface {
	// IsGitRepo returns true if the current directory is inside a git repository.
	IsGitRepo() (bool, error)

	// Refs lists refs under the given patterns (e.g. "refs/heads").
	// Non-empty contains/noContains restrict the result to refs whose
	// history does or does not include that commit.
	Refs(patterns []string, contains, noContains string) ([]Ref, error)

	// RefExists returns true if ref resolves to an object.
	RefExists(ref string) bool

	// AheadBehind counts commits on ref that are not on base (ahead) and
	// commits on base that are not on ref (behind).
	AheadBehind(base, ref string) (ahead, behind int, err error)
}

const refFormat = "%(refname)%09%(committerdate:unix)%09%(HEAD)"

// RealGitRunner executes actual git commands.
type RealGitRunner struct {
	Log *zap.Logger
}

func (r *RealGitRunner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

func (r *RealGitRunner) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	err := cmd.Run()
	r.logger().Debug("git", zap.Strings("args", args), zap.Error(err))
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %s", args[0], msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return trimOutput(out.String()), nil
}

// trimOutput drops trailing line terminators only. %(HEAD) prints a single
// space for refs that are not checked out, and that field must survive.
func trimOutput(out string) string {
	return strings.TrimRight(out, "\r\n")
}

func (r *RealGitRunner) IsGitRepo() (bool, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return false, err
	}
	// Exit code 128 = not a git repository
	_, err := r.git("rev-parse", "--git-dir")
	return err == nil, nil
}

func (r *RealGitRunner) Refs(patterns []string, contains, noContains string) ([]Ref, error) {
	args := []string{"for-each-ref", "--format=" + refFormat}
	if contains != "" {
		args = append(args, "--contains", contains)
	}
	if noContains != "" {
		args = append(args, "--no-contains", noContains)
	}
	args = append(args, patterns...)

	out, err := r.git(args...)
	if err != nil {
		return nil, err
	}
	return parseRefs(out)
}

func (r *RealGitRunner) RefExists(ref string) bool {
	_, err := r.git("rev-parse", "--verify", "--quiet", ref)
	return err == nil
}

func (r *RealGitRunner) AheadBehind(base, ref string) (int, int, error) {
	out, err := r.git("rev-list", "--left-right", "--count", base+"..."+ref)
	if err != nil {
		return 0, 0, err
	}
	return parseLeftRight(out)
}

// parseRefs parses refFormat lines: refname, unix timestamp and "*" for HEAD,
// separated by tabs.
func parseRefs(out string) ([]Ref, error) {
	if out == "" {
		return nil, nil
	}

	var refs []Ref
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) == 2 {
			fields = append(fields, "")
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("unexpected for-each-ref line %q", line)
		}
		ts, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid commit date in %q: %w", line, err)
		}
		refs = append(refs, Ref{
			Name:      fields[0],
			Committed: time.Unix(ts, 0),
			Head:      fields[2] == "*",
		})
	}
	return refs, nil
}

// parseLeftRight parses 'rev-list --left-right --count base...ref' output.
// The left count is commits only on base, the right count commits only on ref.
func parseLeftRight(out string) (ahead, behind int, err error) {
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", out)
	}
	if behind, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid behind count %q: %w", fields[0], err)
	}
	if ahead, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid ahead count %q: %w", fields[1], err)
	}
	return ahead, behind, nil
}
