package translate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/buildscribe/buildscribe/internal/compdb"
	"github.com/buildscribe/buildscribe/internal/config"
	"github.com/buildscribe/buildscribe/internal/events"
)

// Command turns one event log into a compilation database.
type Command struct {
	cfg config.Translate
}

// Execute reads the configured event log, expands the compiler invocations
// into database entries, and writes the database. In append mode new entries
// merge into the existing database; duplicates collapse either way.
func (c *Command) Execute() (int, error) {
	evs, err := events.Read(c.cfg.InputFile)
	if err != nil {
		return 0, err
	}

	sem := NewSemantic(c.cfg.Compilers)
	var entries []compdb.Entry
	skipped := 0
	for _, ev := range evs {
		es := sem.Entries(ev)
		if len(es) == 0 {
			skipped++
			continue
		}
		entries = append(entries, es...)
	}

	if c.cfg.RunChecks {
		entries = filterExisting(entries)
	}

	var existing []compdb.Entry
	if c.cfg.Append {
		if _, statErr := os.Stat(c.cfg.OutputFile); statErr == nil {
			existing, err = compdb.Load(c.cfg.OutputFile)
			if err != nil {
				return 0, err
			}
		}
	}
	merged := compdb.Merge(existing, entries)

	if err := compdb.Write(c.cfg.OutputFile, merged); err != nil {
		return 0, err
	}

	fmt.Fprintf(os.Stderr, "buildscribe: wrote %d entries to %s (%d events, %d not compilations)\n",
		len(merged), c.cfg.OutputFile, len(evs), skipped)
	return 0, nil
}

// filterExisting drops entries whose source file cannot be found on this
// host, resolving relative paths against the entry's directory.
func filterExisting(entries []compdb.Entry) []compdb.Entry {
	kept := entries[:0]
	for _, e := range entries {
		path := e.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.Directory, path)
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
