// Package args holds the immutable parsed CLI input that drives dispatch.
package args

import (
	"github.com/spf13/pflag"
)

// Arguments is the parsed command-line input for one invocation.
//
// Verb is the subcommand name the user typed ("capture", "translate"), or
// empty for the combined top-level grammar. Command is the trailing build
// command, i.e. everything after the "--" separator. Named flags are looked
// up through the pflag set the CLI layer already parsed.
type Arguments struct {
	Verb    string
	Command []string
	flags   *pflag.FlagSet
}

// New builds an Arguments value from a parsed flag set.
func New(verb string, command []string, flags *pflag.FlagSet) Arguments {
	return Arguments{Verb: verb, Command: command, flags: flags}
}

// String returns the value of a named string flag and whether the user set
// it explicitly. Unknown or unset flags report false.
func (a Arguments) String(name string) (string, bool) {
	if a.flags == nil {
		return "", false
	}
	f := a.flags.Lookup(name)
	if f == nil {
		return "", false
	}
	return f.Value.String(), f.Changed
}

// Bool returns the value of a named bool flag. Unknown flags report false.
func (a Arguments) Bool(name string) bool {
	if a.flags == nil {
		return false
	}
	v, err := a.flags.GetBool(name)
	if err != nil {
		return false
	}
	return v
}

// Changed reports whether the user set the named flag explicitly.
func (a Arguments) Changed(name string) bool {
	if a.flags == nil {
		return false
	}
	f := a.flags.Lookup(name)
	return f != nil && f.Changed
}
