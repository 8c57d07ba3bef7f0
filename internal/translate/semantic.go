package translate

import (
	"path/filepath"
	"strings"

	"github.com/buildscribe/buildscribe/internal/compdb"
	"github.com/buildscribe/buildscribe/internal/events"
)

// builtinCompilers are the command names recognized as compiler frontends.
// Configuration can extend the set but not shrink it.
var builtinCompilers = []string{"cc", "c++", "gcc", "g++", "clang", "clang++"}

// sourceExtensions mark an argument as a source-file operand.
var sourceExtensions = map[string]bool{
	".c": true, ".C": true, ".cc": true, ".cp": true, ".cpp": true,
	".cxx": true, ".c++": true, ".i": true, ".ii": true,
	".m": true, ".mm": true, ".s": true, ".S": true,
}

// skipFlags mark invocations that never produce object code: preprocessing,
// dependency generation, version queries.
var skipFlags = map[string]bool{
	"-E": true, "-M": true, "-MM": true, "--version": true, "-###": true,
	"-dumpversion": true, "-dumpmachine": true,
}

// separateArgFlags consume the following argument, which therefore must not
// be mistaken for a source operand.
var separateArgFlags = map[string]bool{
	"-o": true, "-I": true, "-D": true, "-U": true, "-include": true,
	"-isystem": true, "-iquote": true, "-imacros": true, "-x": true,
	"-MF": true, "-MT": true, "-MQ": true, "-Xlinker": true,
	"-Xpreprocessor": true, "-Xassembler": true, "-arch": true,
	"--param": true,
}

// Semantic recognizes compiler invocations in captured events and expands
// them into compilation-database entries.
type Semantic struct {
	compilers map[string]bool
}

// NewSemantic builds a recognizer over the built-in compiler names plus the
// configured extras.
func NewSemantic(extra []string) *Semantic {
	compilers := make(map[string]bool, len(builtinCompilers)+len(extra))
	for _, name := range builtinCompilers {
		compilers[name] = true
	}
	for _, name := range extra {
		if name != "" {
			compilers[name] = true
		}
	}
	return &Semantic{compilers: compilers}
}

// Recognize reports whether argv0 names a known compiler. Version-suffixed
// names like gcc-13 or clang++-17 count.
func (s *Semantic) Recognize(argv0 string) bool {
	name := filepath.Base(argv0)
	if s.compilers[name] {
		return true
	}
	if i := strings.LastIndexByte(name, '-'); i > 0 && isDigits(name[i+1:]) {
		return s.compilers[name[:i]]
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Entries expands one event into compilation-database entries: one per
// source operand. Non-compiler commands and invocations that cannot produce
// object code yield nothing.
func (s *Semantic) Entries(ev events.Event) []compdb.Entry {
	if len(ev.Argv) == 0 || !s.Recognize(ev.Argv[0]) {
		return nil
	}

	var sources []string
	output := ""

	for i := 1; i < len(ev.Argv); i++ {
		arg := ev.Argv[i]
		switch {
		case skipFlags[arg]:
			return nil
		case arg == "-o":
			if i+1 < len(ev.Argv) {
				i++
				output = ev.Argv[i]
			}
		case separateArgFlags[arg]:
			i++ // flag parameter, never a source operand
		case strings.HasPrefix(arg, "-o") && len(arg) > 2:
			output = arg[2:]
		case strings.HasPrefix(arg, "-"):
			// other flag, possibly with attached value
		case sourceExtensions[filepath.Ext(arg)]:
			sources = append(sources, arg)
		}
	}

	if len(sources) == 0 {
		return nil // link-only or no recognizable operand
	}

	entries := make([]compdb.Entry, 0, len(sources))
	for _, src := range sources {
		entry := compdb.Entry{
			Directory: ev.Directory,
			File:      src,
			Arguments: ev.Argv,
		}
		// A single translation unit keeps its -o target; with several the
		// per-source outputs are not knowable from one command line.
		if len(sources) == 1 {
			entry.Output = output
		}
		entries = append(entries, entry)
	}
	return entries
}
