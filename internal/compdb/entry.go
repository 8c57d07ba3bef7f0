// Package compdb models the clang-style JSON compilation database.
package compdb

import (
	"errors"
	"strings"
)

// Entry is one compilation-database record.
type Entry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments"`
	Output    string   `json:"output,omitempty"`
}

// Validate checks the fields clang tooling requires.
func (e Entry) Validate() error {
	if e.Directory == "" {
		return errors.New("directory is required")
	}
	if e.File == "" {
		return errors.New("file is required")
	}
	if len(e.Arguments) == 0 {
		return errors.New("arguments must be non-empty")
	}
	return nil
}

// key identifies an entry for deduplication: same file compiled the same
// way into the same output is a duplicate regardless of directory.
func (e Entry) key() string {
	return e.File + "\x00" + e.Output + "\x00" + strings.Join(e.Arguments, "\x00")
}

// Merge appends the entries of add to base, dropping duplicates. Order is
// preserved: base entries first, then new ones in their original order.
func Merge(base, add []Entry) []Entry {
	seen := make(map[string]bool, len(base))
	merged := make([]Entry, 0, len(base)+len(add))
	for _, e := range base {
		if seen[e.key()] {
			continue
		}
		seen[e.key()] = true
		merged = append(merged, e)
	}
	for _, e := range add {
		if seen[e.key()] {
			continue
		}
		seen[e.key()] = true
		merged = append(merged, e)
	}
	return merged
}
