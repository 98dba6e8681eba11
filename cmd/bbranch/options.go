package main

import (
	"github.com/spf13/pflag"

	"github.com/GiannhsR/B-branch/pkg/flags"
	"github.com/GiannhsR/B-branch/pkg/gitbranch"
	"github.com/GiannhsR/B-branch/pkg/validate"
)

var (
	showVersion      bool
	listAll          bool
	listRemote       bool
	containsCommit   string
	noContainsCommit string
	sortBy           string
	printTop         string
)

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&showVersion, flags.Version.Name(), "v", false,
		"print version information and exit")
	f.BoolVarP(&listAll, flags.All.Name(), "a", false,
		"list both local and remote branches")
	f.BoolVarP(&listRemote, flags.Remote.Name(), "r", false,
		"list remote branches only")
	f.StringVarP(&containsCommit, flags.Contains.Name(), "c", "",
		"only branches that contain the given commit")
	f.StringVarP(&noContainsCommit, flags.Nocontains.Name(), "n", "",
		"only branches that do not contain the given commit")
	// --sort and --print-top are strings so the validator sees what was typed.
	f.StringVarP(&sortBy, flags.Sort.Name(), "s", "",
		"sort by date, name, ahead or behind (default date)")
	f.StringVarP(&printTop, flags.Printtop.Name(), "p", "",
		"show only the first N branches")
}

// collectOptions maps every flag the user set to its raw value.
// Flags unknown to the flags package, such as --help, are skipped.
// Changed is the source of truth, since Visit keeps flags from earlier parses
// of the same FlagSet.
func collectOptions(fs *pflag.FlagSet) flags.Options {
	options := flags.Options{}
	fs.VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		t, ok := flags.Lookup(f.Name)
		if !ok {
			return
		}
		if f.Value.Type() == "bool" {
			options[t] = ""
			return
		}
		options[t] = f.Value.String()
	})
	return options
}

// queryFromOptions builds a listing query from options that passed validation.
func queryFromOptions(options flags.Options) gitbranch.Query {
	q := gitbranch.Query{
		Contains:   options[flags.Contains],
		NoContains: options[flags.Nocontains],
		SortBy:     options[flags.Sort],
	}

	switch {
	case options.Has(flags.All):
		q.Scope = gitbranch.ScopeAll
	case options.Has(flags.Remote):
		q.Scope = gitbranch.ScopeRemote
	}

	if v, ok := options.Get(flags.Printtop); ok {
		if n, err := validate.ParsePrintTop(v); err == nil {
			q.Top = n
		}
	}
	return q
}
