// Package gitbranch lists git branches with their last commit date and how
// far each has diverged from a base branch.
package gitbranch

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ErrNotGitRepo is returned when the working directory is not inside a repository.
var ErrNotGitRepo = errors.New("not a git repository")

// Scope selects which refs are listed.
type Scope int

const (
	ScopeLocal  Scope = iota // refs/heads
	ScopeRemote              // refs/remotes
	ScopeAll                 // both
)

const (
	localPrefix  = "refs/heads/"
	remotePrefix = "refs/remotes/"
)

func (s Scope) patterns() []string {
	switch s {
	case ScopeRemote:
		return []string{"refs/remotes"}
	case ScopeAll:
		return []string{"refs/heads", "refs/remotes"}
	default:
		return []string{"refs/heads"}
	}
}

// Sort keys accepted by Query.SortBy.
const (
	SortDate   = "date"
	SortName   = "name"
	SortAhead  = "ahead"
	SortBehind = "behind"
)

// Branch is one row of the listing.
type Branch struct {
	Name       string // short name, e.g. "main" or "origin/main"
	Ref        string // full refname, e.g. "refs/remotes/origin/main"
	Remote     bool
	Current    bool
	LastCommit time.Time
	Ahead      int
	Behind     int
}

// Query describes which branches to list and how.
type Query struct {
	Scope      Scope
	Contains   string // only branches containing this commit
	NoContains string // only branches not containing this commit
	SortBy     string // one of the Sort* keys; empty means SortDate
	Top        int    // keep at most this many; 0 keeps all
}

// Lister lists branches through a GitRunner.
type Lister struct {
	Runner GitRunner
	Base   string // branch to compare against; resolved automatically when empty
}

// List returns the branches matching q, sorted and truncated as requested.
func (l *Lister) List(q Query) ([]Branch, error) {
	isRepo, err := l.Runner.IsGitRepo()
	if err != nil {
		return nil, fmt.Errorf("failed to check git repository: %w", err)
	}
	if !isRepo {
		return nil, ErrNotGitRepo
	}

	base := l.baseRef()

	refs, err := l.Runner.Refs(q.Scope.patterns(), q.Contains, q.NoContains)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	branches := lo.FilterMap(refs, func(r Ref, _ int) (Branch, bool) {
		return toBranch(r)
	})

	for i := range branches {
		ahead, behind, err := l.Runner.AheadBehind(base, branches[i].Ref)
		if err != nil {
			return nil, fmt.Errorf("failed to compare %s with %s: %w", branches[i].Name, base, err)
		}
		branches[i].Ahead = ahead
		branches[i].Behind = behind
	}

	sortBranches(branches, q.SortBy)

	if q.Top > 0 && len(branches) > q.Top {
		branches = branches[:q.Top]
	}
	return branches, nil
}

// ResolveBase returns the configured base, else "main" or "master" when
// such a local branch exists, else "HEAD".
func (l *Lister) ResolveBase() string {
	name, _ := l.resolveBase()
	return name
}

// baseRef is the revision ahead/behind counts are measured against.
func (l *Lister) baseRef() string {
	_, ref := l.resolveBase()
	return ref
}

// resolveBase returns the base as shown to the user and as passed to git.
// Detected branches are fully qualified so a tag of the same name cannot
// shadow them; a configured base is used exactly as given.
func (l *Lister) resolveBase() (name, ref string) {
	if l.Base != "" {
		return l.Base, l.Base
	}
	for _, candidate := range []string{"main", "master"} {
		if l.Runner.RefExists(localPrefix + candidate) {
			return candidate, localPrefix + candidate
		}
	}
	return "HEAD", "HEAD"
}

func toBranch(r Ref) (Branch, bool) {
	switch {
	case strings.HasPrefix(r.Name, localPrefix):
		return Branch{
			Name:       strings.TrimPrefix(r.Name, localPrefix),
			Ref:        r.Name,
			Current:    r.Head,
			LastCommit: r.Committed,
		}, true
	case strings.HasPrefix(r.Name, remotePrefix):
		name := strings.TrimPrefix(r.Name, remotePrefix)
		// origin/HEAD is a symbolic pointer, not a branch
		if strings.HasSuffix(name, "/HEAD") {
			return Branch{}, false
		}
		return Branch{
			Name:       name,
			Ref:        r.Name,
			Remote:     true,
			LastCommit: r.Committed,
		}, true
	}
	return Branch{}, false
}

func sortBranches(branches []Branch, by string) {
	slices.SortStableFunc(branches, func(a, b Branch) int {
		var c int
		switch by {
		case SortName:
		case SortAhead:
			c = cmp.Compare(b.Ahead, a.Ahead)
		case SortBehind:
			c = cmp.Compare(b.Behind, a.Behind)
		default:
			c = b.LastCommit.Compare(a.LastCommit)
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}
