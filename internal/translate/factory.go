// Package translate implements the translation stage: it reads a captured
// event log and emits a normalized JSON compilation database.
package translate

import (
	"errors"

	"github.com/buildscribe/buildscribe/internal/args"
	"github.com/buildscribe/buildscribe/internal/config"
	"github.com/buildscribe/buildscribe/internal/dispatch"
)

// Verb is the stage's exclusive subcommand name.
const Verb = "translate"

// Factory constructs translate commands from a stage configuration.
type Factory struct {
	cfg config.Translate
}

// NewFactory returns a factory bound to the loaded stage configuration.
func NewFactory(cfg config.Translate) *Factory {
	return &Factory{cfg: cfg}
}

// Matches reports whether the arguments use the translate-exclusive grammar.
func (f *Factory) Matches(a args.Arguments) bool {
	return a.Verb == Verb
}

// LoadConfig replaces the stage configuration. The dispatcher uses it to
// force the input path onto the pipeline's intermediate file.
func (f *Factory) LoadConfig(cfg config.Translate) {
	f.cfg = cfg
}

// Subcommand builds the stage command. It fails when the configured paths
// are unusable.
func (f *Factory) Subcommand(_ args.Arguments) (dispatch.Command, error) {
	if f.cfg.InputFile == "" {
		return nil, errors.New("missing input event log path")
	}
	if f.cfg.OutputFile == "" {
		return nil, errors.New("missing compilation database output path")
	}
	return &Command{cfg: f.cfg}, nil
}
