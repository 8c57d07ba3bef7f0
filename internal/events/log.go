package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// Append writes one event to the JSONL log at path, creating the file on
// first use. An exclusive file lock serializes appends: under a parallel
// build several wrapper processes report into the same log at once.
func Append(path string, ev Event) error {
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock event log %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // log must be readable by the translate stage
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer file.Close() //nolint:errcheck // best-effort close

	if err := json.NewEncoder(file).Encode(ev); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// Read parses the JSONL log at path. Empty lines are skipped; a malformed
// or incomplete entry fails with its line number.
func Read(path string) ([]Event, error) {
	file, err := os.Open(path) //nolint:gosec // file path from caller
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer file.Close() //nolint:errcheck // read-only file close

	var evs []Event
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("invalid JSON at line %d: %w", lineNum, err)
		}
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		evs = append(evs, ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading event log: %w", err)
	}
	return evs, nil
}
