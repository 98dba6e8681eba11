package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jwalton/go-supportscolor"

	"github.com/GiannhsR/B-branch/pkg/gitbranch"
)

var (
	green = "\033[32m"
	dim   = "\033[2m"
	reset = "\033[0m"

	// PrintErrors writes to stderr, which may be redirected independently.
	errRed   = "\033[31m"
	errReset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, dim, reset = "", "", ""
	}
	if !supportscolor.Stderr().SupportsColor {
		errRed, errReset = "", ""
	}
}

// PrintErrors writes one line per usage error.
func PrintErrors(w io.Writer, messages []string) {
	for _, m := range messages {
		fmt.Fprintf(w, "%s[ERROR]%s %s\n", errRed, errReset, m)
	}
}

// PrintVersion writes the version line.
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintf(w, "bbranch version %s\n", version)
}

// PrintBranches writes a table of branches compared against base.
// Dates are rendered relative to now.
func PrintBranches(w io.Writer, branches []gitbranch.Branch, base string, now time.Time) error {
	if len(branches) == 0 {
		fmt.Fprintln(w, "no branches found")
		return nil
	}

	fmt.Fprintf(w, "%sbase:%s %s\n", dim, reset, base)

	// Branch names carry colour codes, so they go in the last, unaligned column.
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "\tAHEAD\tBEHIND\tLAST COMMIT\tBRANCH")
	for _, b := range branches {
		mark := ""
		if b.Current {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			mark,
			formatCount("+", b.Ahead),
			formatCount("-", b.Behind),
			humanize.RelTime(b.LastCommit, now, "ago", "from now"),
			formatName(b),
		)
	}
	return tw.Flush()
}

func formatName(b gitbranch.Branch) string {
	switch {
	case b.Current:
		return green + b.Name + reset
	case b.Remote:
		return dim + b.Name + reset
	default:
		return b.Name
	}
}

func formatCount(sign string, n int) string {
	if n == 0 {
		return "0"
	}
	return fmt.Sprintf("%s%d", sign, n)
}
