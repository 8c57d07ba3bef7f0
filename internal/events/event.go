// Package events defines the compiler-invocation event log: the JSONL
// artifact the capture stage writes and the translate stage consumes.
package events

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Event is a single recorded compiler invocation.
type Event struct {
	ID        string   `json:"id"`
	Session   string   `json:"session,omitempty"`
	Timestamp string   `json:"timestamp"`
	PID       int      `json:"pid"`
	PPID      int      `json:"ppid"`
	Directory string   `json:"directory"`
	Argv      []string `json:"argv"`
}

// New builds an event for the current process invoking argv in dir.
func New(session string, argv []string, dir string) Event {
	return Event{
		ID:        uuid.NewString(),
		Session:   session,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		PID:       os.Getpid(),
		PPID:      os.Getppid(),
		Directory: dir,
		Argv:      argv,
	}
}

// Validate checks that the event carries everything translation needs.
func (e Event) Validate() error {
	if len(e.Argv) == 0 {
		return errors.New("argv must be non-empty")
	}
	if e.Timestamp == "" {
		return errors.New("timestamp is required")
	}
	if _, err := time.Parse(time.RFC3339Nano, e.Timestamp); err != nil {
		return fmt.Errorf("invalid timestamp format: %w", err)
	}
	if e.Directory == "" {
		return errors.New("directory is required")
	}
	return nil
}
