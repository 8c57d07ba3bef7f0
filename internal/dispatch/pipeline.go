package dispatch

import (
	"os"
)

// Pipeline runs the capture stage and then, if the intermediate event file
// exists, the translate stage. It owns two deferred construction outcomes
// and the intermediate path both stages were configured with.
type Pipeline struct {
	capture      *Outcome
	translate    *Outcome
	intermediate string
}

// NewPipeline wraps two stage construction outcomes and the shared
// intermediate path into one runnable command.
func NewPipeline(capture, translate *Outcome, intermediate string) *Pipeline {
	return &Pipeline{
		capture:      capture,
		translate:    translate,
		intermediate: intermediate,
	}
}

// Intermediate returns the event-file path the stages hand off through.
func (p *Pipeline) Intermediate() string {
	return p.intermediate
}

// Execute runs the pipeline once.
//
// A failed stage construction surfaces before anything runs, capture checked
// first; in that case the filesystem is never touched. Otherwise the capture
// stage runs and its result — success or failure — is what Execute returns.
// The translate stage runs only when the intermediate file exists afterward,
// its own result is discarded, and the intermediate file is removed best
// effort. The existence check is deliberately independent of the capture
// result: a stale event file from an earlier run still triggers translation.
//
// The pipeline is not reusable: a second Execute fails with
// ErrOutcomeConsumed.
func (p *Pipeline) Execute() (int, error) {
	captureCmd, err := p.capture.Take()
	if err != nil {
		return 0, err
	}
	translateCmd, err := p.translate.Take()
	if err != nil {
		return 0, err
	}

	code, runErr := captureCmd.Execute()

	if _, statErr := os.Stat(p.intermediate); statErr == nil {
		_, _ = translateCmd.Execute()
		_ = os.Remove(p.intermediate)
	}

	return code, runErr
}
