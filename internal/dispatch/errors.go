package dispatch

import (
	"errors"
	"fmt"
)

// ErrOutcomeConsumed reports a second consumption of a stage construction
// outcome, which also makes a pipeline single-use.
var ErrOutcomeConsumed = errors.New("stage command already consumed")

// InvalidSubcommandError reports a subcommand verb that matched neither
// stage's exclusive grammar.
type InvalidSubcommandError struct {
	Verb string
}

func (e *InvalidSubcommandError) Error() string {
	return fmt.Sprintf("invalid subcommand: %q", e.Verb)
}
