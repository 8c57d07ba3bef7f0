// Package dispatch decides which stage a buildscribe invocation runs:
// capture only, translate only, or both pipelined through a shared
// intermediate event file.
package dispatch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/buildscribe/buildscribe/internal/args"
	"github.com/buildscribe/buildscribe/internal/config"
)

// Command is the minimal capability required of any runnable command: one
// blocking call that yields a process exit code or fails.
type Command interface {
	Execute() (int, error)
}

// CaptureFactory builds the capture stage's command. Matches reports
// whether an argument set belongs exclusively to this stage, and LoadConfig
// replaces the configuration the factory was constructed with before a
// pipelined construction.
type CaptureFactory interface {
	Matches(a args.Arguments) bool
	LoadConfig(cfg config.Capture)
	Subcommand(a args.Arguments) (Command, error)
}

// TranslateFactory is the translate-stage counterpart of CaptureFactory.
type TranslateFactory interface {
	Matches(a args.Arguments) bool
	LoadConfig(cfg config.Translate)
	Subcommand(a args.Arguments) (Command, error)
}

// Dispatcher resolves parsed arguments into a single runnable command. The
// stage factories are created per invocation from the injected constructors
// once the configuration has loaded.
type Dispatcher struct {
	NewCapture   func(config.Capture) CaptureFactory
	NewTranslate func(config.Translate) TranslateFactory
	LoadConfig   func(args.Arguments) (config.Config, error)
}

// intermediateSuffix replaces the database path's extension to form the
// event-file path the pipeline hands between the two stages.
const intermediateSuffix = ".events.json"

// IntermediatePath derives the pipeline's event-file path from the
// compilation database path: compile_commands.json becomes
// compile_commands.events.json.
func IntermediatePath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + intermediateSuffix
}

// Resolve inspects the parsed arguments and returns the command to run.
//
// An argument set matching a stage's exclusive grammar resolves to that
// stage's own construction result, capture checked before translate. A verb
// that matches neither grammar is an invalid subcommand. Anything else is
// the pipelined mode: both stage commands are constructed eagerly against
// the shared intermediate path, and their construction results are deferred
// into a Pipeline whose own creation cannot fail.
func (d *Dispatcher) Resolve(a args.Arguments) (Command, error) {
	cfg, err := d.LoadConfig(a)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	capture := d.NewCapture(cfg.Capture)
	translate := d.NewTranslate(cfg.Translate)

	if capture.Matches(a) {
		return capture.Subcommand(a)
	}
	if translate.Matches(a) {
		return translate.Subcommand(a)
	}
	if a.Verb != "" {
		return nil, &InvalidSubcommandError{Verb: a.Verb}
	}

	// Pipelined mode. The capture stage's output and the translate stage's
	// input are forced to one intermediate path, overriding any configured
	// value.
	intermediate := IntermediatePath(cfg.Translate.OutputFile)
	cfg.Capture.OutputFile = intermediate
	cfg.Translate.InputFile = intermediate

	capture.LoadConfig(cfg.Capture)
	captureCmd, captureErr := capture.Subcommand(a)

	translate.LoadConfig(cfg.Translate)
	translateCmd, translateErr := translate.Subcommand(a)

	return NewPipeline(
		NewOutcome(captureCmd, captureErr),
		NewOutcome(translateCmd, translateErr),
		intermediate,
	), nil
}
