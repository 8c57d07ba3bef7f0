// Package capture implements the process-capture stage: it supervises a
// build command and records every compiler invocation to an event log.
package capture

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/buildscribe/buildscribe/internal/args"
	"github.com/buildscribe/buildscribe/internal/config"
	"github.com/buildscribe/buildscribe/internal/dispatch"
)

// Verb is the stage's exclusive subcommand name.
const Verb = "capture"

// DefaultCompilers are the command names intercepted by the wrapper
// directory. The translate stage recognizes the same set.
var DefaultCompilers = []string{"cc", "c++", "gcc", "g++", "clang", "clang++"}

// Factory constructs capture commands from a stage configuration.
type Factory struct {
	cfg config.Capture
}

// NewFactory returns a factory bound to the loaded stage configuration.
func NewFactory(cfg config.Capture) *Factory {
	return &Factory{cfg: cfg}
}

// Matches reports whether the arguments use the capture-exclusive grammar.
func (f *Factory) Matches(a args.Arguments) bool {
	return a.Verb == Verb
}

// LoadConfig replaces the stage configuration. The dispatcher uses it to
// force the output path onto the pipeline's intermediate file.
func (f *Factory) LoadConfig(cfg config.Capture) {
	f.cfg = cfg
}

// Subcommand builds the stage command for the given arguments. It fails for
// an empty build command or conflicting interception-mode flags.
func (f *Factory) Subcommand(a args.Arguments) (dispatch.Command, error) {
	if len(a.Command) == 0 {
		return nil, errors.New(`missing build command after "--"`)
	}
	if f.cfg.ForcePreload && f.cfg.ForceWrapper {
		return nil, errors.New("--force-preload and --force-wrapper are mutually exclusive")
	}

	shimTarget, err := resolveShimTarget(f.cfg, a)
	if err != nil {
		return nil, err
	}

	return &Command{
		cfg:        f.cfg,
		build:      a.Command,
		shimTarget: shimTarget,
		session:    uuid.NewString(),
		compilers:  DefaultCompilers,
	}, nil
}

// resolveShimTarget picks the executable the wrapper symlinks point at: an
// explicit wrapper binary, the --self developer override, or the running
// buildscribe binary.
func resolveShimTarget(cfg config.Capture, a args.Arguments) (string, error) {
	if cfg.Wrapper != "" {
		return cfg.Wrapper, nil
	}
	if v, ok := a.String("self"); ok && v != "" {
		return v, nil
	}
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate the buildscribe binary: %w", err)
	}
	return self, nil
}
