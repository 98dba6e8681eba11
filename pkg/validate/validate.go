// Package validate checks parsed bbranch options for conflicting flags and
// out-of-domain values before any command runs.
package validate

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/GiannhsR/B-branch/pkg/errsink"
	"github.com/GiannhsR/B-branch/pkg/flags"
)

// Result is the outcome of a validation pass.
type Result string

const (
	Success Result = "SUCCESS"
	Error   Result = "ERROR"
)

// OK returns true if validation passed.
func (r Result) OK() bool {
	return r == Success
}

// Check inspects the options and registers a message on sink when it fails.
type Check func(options flags.Options, sink errsink.Sink) Result

// Checks is the order in which Arguments applies its rules.
var Checks = []Check{
	CheckVersion,
	CheckContains,
	CheckAllRemote,
	CheckSortValue,
	CheckPrintTopValue,
}

// Arguments runs Checks against options and stops at the first failure.
// A nil sink discards messages.
func Arguments(options flags.Options, sink errsink.Sink) Result {
	return Run(options, sink, Checks...)
}

// Run applies checks in order and returns Error from the first one that fails.
func Run(options flags.Options, sink errsink.Sink, checks ...Check) Result {
	if sink == nil {
		sink = errsink.Discard
	}
	for _, check := range checks {
		if check(options, sink) == Error {
			return Error
		}
	}
	return Success
}

// CheckVersion rejects --version combined with any other flag.
func CheckVersion(options flags.Options, sink errsink.Sink) Result {
	if options.Has(flags.Version) && len(options) > 1 {
		sink.Register("You cannot use --version with any other option")
		return Error
	}
	return Success
}

// CheckContains rejects --contains together with --no-contains.
func CheckContains(options flags.Options, sink errsink.Sink) Result {
	if options.Has(flags.Contains) && options.Has(flags.Nocontains) {
		sink.Register("You cannot use both --contains and --no-contains")
		return Error
	}
	return Success
}

// CheckAllRemote rejects --all together with --remote.
func CheckAllRemote(options flags.Options, sink errsink.Sink) Result {
	if options.Has(flags.All) && options.Has(flags.Remote) {
		sink.Register("You cannot use both --all and --remote")
		return Error
	}
	return Success
}

// CheckSortValue requires --sort to be one of flags.SortKeys, compared
// case-sensitively.
func CheckSortValue(options flags.Options, sink errsink.Sink) Result {
	value, ok := options.Get(flags.Sort)
	if !ok || lo.Contains(flags.SortKeys, value) {
		return Success
	}

	sink.Register("Value for --sort is missing. Valid values are: " + strings.Join(flags.SortKeys, ", "))
	return Error
}

// CheckPrintTopValue requires --print-top to be a positive 32-bit integer.
// A value that is not an integer at all fails without registering a message.
func CheckPrintTopValue(options flags.Options, sink errsink.Sink) Result {
	value, ok := options.Get(flags.Printtop)
	if !ok {
		return Success
	}

	n, err := ParsePrintTop(value)
	if err != nil {
		return Error
	}
	if n < 1 {
		sink.Register("Value for --print-top must be greater than 0")
		return Error
	}
	return Success
}

// asciiSpace is the whitespace allowed around a --print-top value.
// Unicode spaces such as U+00A0 are not trimmed.
const asciiSpace = " \t\n\v\f\r"

// ParsePrintTop parses a --print-top value. Surrounding ASCII whitespace and
// a leading sign are accepted; values outside the int32 range are rejected.
func ParsePrintTop(value string) (int, error) {
	n, err := strconv.ParseInt(strings.Trim(value, asciiSpace), 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
