package dispatch

// Outcome holds a stage command's construction result — the command or the
// error the factory produced — until execution time. It is produced once at
// dispatch and consumed exactly once; a second Take fails instead of
// re-inspecting the stored value.
type Outcome struct {
	cmd   Command
	err   error
	taken bool
}

// NewOutcome wraps a factory's construction result.
func NewOutcome(cmd Command, err error) *Outcome {
	return &Outcome{cmd: cmd, err: err}
}

// Take consumes the outcome, returning the constructed command or the
// construction error. After the first call the outcome is spent and Take
// returns ErrOutcomeConsumed.
func (o *Outcome) Take() (Command, error) {
	if o.taken {
		return nil, ErrOutcomeConsumed
	}
	o.taken = true
	if o.err != nil {
		return nil, o.err
	}
	return o.cmd, nil
}
