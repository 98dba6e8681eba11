// Package flags defines the options bbranch recognises and the parsed
// flag-to-value mapping handed to validation.
package flags

// Type identifies one recognised command-line option.
type Type int

const (
	Version Type = iota
	Contains
	Nocontains
	All
	Remote
	Sort
	Printtop
)

// SortKeys lists the accepted values of --sort.
var SortKeys = []string{"date", "name", "ahead", "behind"}

var names = map[Type]string{
	Version:    "version",
	Contains:   "contains",
	Nocontains: "no-contains",
	All:        "all",
	Remote:     "remote",
	Sort:       "sort",
	Printtop:   "print-top",
}

// Name returns the long flag name without dashes, e.g. "no-contains".
func (t Type) Name() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "unknown"
}

// String returns the flag as typed on the command line, e.g. "--sort".
func (t Type) String() string {
	return "--" + t.Name()
}

// Lookup returns the Type for a long flag name.
func Lookup(name string) (Type, bool) {
	for t, n := range names {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Options maps each supplied flag to its raw value. Boolean switches map to "".
type Options map[Type]string

// Has reports whether the flag was supplied.
func (o Options) Has(t Type) bool {
	_, ok := o[t]
	return ok
}

// Get returns the flag's value and whether it was supplied.
func (o Options) Get(t Type) (string, bool) {
	v, ok := o[t]
	return v, ok
}
