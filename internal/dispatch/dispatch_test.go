package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildscribe/buildscribe/internal/args"
	"github.com/buildscribe/buildscribe/internal/config"
)

// fakeCommand is a canned runnable command that records executions.
type fakeCommand struct {
	code     int
	err      error
	executed int
	onRun    func()
}

func (c *fakeCommand) Execute() (int, error) {
	c.executed++
	if c.onRun != nil {
		c.onRun()
	}
	return c.code, c.err
}

// fakeCaptureFactory records every call the dispatcher makes.
type fakeCaptureFactory struct {
	matches bool
	cmd     Command
	err     error

	matchesCalls    int
	subcommandCalls int
	loadedConfigs   []config.Capture
}

func (f *fakeCaptureFactory) Matches(args.Arguments) bool {
	f.matchesCalls++
	return f.matches
}

func (f *fakeCaptureFactory) LoadConfig(cfg config.Capture) {
	f.loadedConfigs = append(f.loadedConfigs, cfg)
}

func (f *fakeCaptureFactory) Subcommand(args.Arguments) (Command, error) {
	f.subcommandCalls++
	return f.cmd, f.err
}

type fakeTranslateFactory struct {
	matches bool
	cmd     Command
	err     error

	matchesCalls    int
	subcommandCalls int
	loadedConfigs   []config.Translate
}

func (f *fakeTranslateFactory) Matches(args.Arguments) bool {
	f.matchesCalls++
	return f.matches
}

func (f *fakeTranslateFactory) LoadConfig(cfg config.Translate) {
	f.loadedConfigs = append(f.loadedConfigs, cfg)
}

func (f *fakeTranslateFactory) Subcommand(args.Arguments) (Command, error) {
	f.subcommandCalls++
	return f.cmd, f.err
}

// newTestDispatcher wires fakes into a dispatcher with a fixed configuration.
func newTestDispatcher(capture *fakeCaptureFactory, translate *fakeTranslateFactory, cfg config.Config) *Dispatcher {
	return &Dispatcher{
		NewCapture:   func(config.Capture) CaptureFactory { return capture },
		NewTranslate: func(config.Translate) TranslateFactory { return translate },
		LoadConfig:   func(args.Arguments) (config.Config, error) { return cfg, nil },
	}
}

func TestResolve_ConfigLoadFailurePropagates(t *testing.T) {
	capture := &fakeCaptureFactory{}
	translate := &fakeTranslateFactory{}
	d := &Dispatcher{
		NewCapture:   func(config.Capture) CaptureFactory { return capture },
		NewTranslate: func(config.Translate) TranslateFactory { return translate },
		LoadConfig: func(args.Arguments) (config.Config, error) {
			return config.Config{}, errors.New("bad config file")
		},
	}

	cmd, err := d.Resolve(args.Arguments{})

	require.Error(t, err)
	assert.ErrorContains(t, err, "bad config file")
	assert.Nil(t, cmd)
	assert.Zero(t, capture.matchesCalls, "no stage may be consulted when config loading fails")
	assert.Zero(t, translate.matchesCalls)
}

func TestResolve_CaptureGrammarPassesThroughCommand(t *testing.T) {
	want := &fakeCommand{code: 3}
	capture := &fakeCaptureFactory{matches: true, cmd: want}
	translate := &fakeTranslateFactory{}
	d := newTestDispatcher(capture, translate, config.Default())

	got, err := d.Resolve(args.Arguments{Verb: "capture"})

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, 1, capture.subcommandCalls)
	assert.Zero(t, translate.matchesCalls, "translate factory must not be consulted")
	assert.Zero(t, translate.subcommandCalls)
}

func TestResolve_CaptureGrammarPassesThroughError(t *testing.T) {
	constructionErr := errors.New("missing build command")
	capture := &fakeCaptureFactory{matches: true, err: constructionErr}
	translate := &fakeTranslateFactory{}
	d := newTestDispatcher(capture, translate, config.Default())

	got, err := d.Resolve(args.Arguments{Verb: "capture"})

	assert.Nil(t, got)
	assert.Equal(t, constructionErr, err, "the stage's own error passes through unchanged")
	assert.Zero(t, translate.subcommandCalls)
}

func TestResolve_TranslateGrammarPassesThrough(t *testing.T) {
	want := &fakeCommand{}
	capture := &fakeCaptureFactory{}
	translate := &fakeTranslateFactory{matches: true, cmd: want}
	d := newTestDispatcher(capture, translate, config.Default())

	got, err := d.Resolve(args.Arguments{Verb: "translate"})

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Zero(t, capture.subcommandCalls, "capture command must not be constructed")
}

func TestResolve_CaptureCheckedBeforeTranslate(t *testing.T) {
	// If both grammars claimed the same input, capture must win.
	want := &fakeCommand{}
	capture := &fakeCaptureFactory{matches: true, cmd: want}
	translate := &fakeTranslateFactory{matches: true, cmd: &fakeCommand{}}
	d := newTestDispatcher(capture, translate, config.Default())

	got, err := d.Resolve(args.Arguments{Verb: "capture"})

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Zero(t, translate.matchesCalls)
	assert.Zero(t, translate.subcommandCalls)
}

func TestResolve_UnknownVerbIsInvalidSubcommand(t *testing.T) {
	capture := &fakeCaptureFactory{}
	translate := &fakeTranslateFactory{}
	d := newTestDispatcher(capture, translate, config.Default())

	cmd, err := d.Resolve(args.Arguments{Verb: "bogus"})

	assert.Nil(t, cmd)
	var invalid *InvalidSubcommandError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "bogus", invalid.Verb)
	assert.Zero(t, capture.subcommandCalls)
	assert.Zero(t, translate.subcommandCalls)
}

func TestResolve_PipelinedModeForcesSharedIntermediatePath(t *testing.T) {
	capture := &fakeCaptureFactory{cmd: &fakeCommand{}}
	translate := &fakeTranslateFactory{cmd: &fakeCommand{}}
	cfg := config.Default()
	cfg.Translate.OutputFile = "out.json"
	d := newTestDispatcher(capture, translate, cfg)

	got, err := d.Resolve(args.Arguments{Command: []string{"make"}})

	require.NoError(t, err)
	pipeline, ok := got.(*Pipeline)
	require.True(t, ok, "pipelined mode must resolve to a Pipeline")
	assert.Equal(t, "out.events.json", pipeline.Intermediate())

	require.Len(t, capture.loadedConfigs, 1)
	require.Len(t, translate.loadedConfigs, 1)
	assert.Equal(t, "out.events.json", capture.loadedConfigs[0].OutputFile,
		"capture output must be forced to the intermediate path")
	assert.Equal(t, "out.events.json", translate.loadedConfigs[0].InputFile,
		"translate input must be forced to the same intermediate path")
	assert.Equal(t, "out.json", translate.loadedConfigs[0].OutputFile)

	assert.Equal(t, 1, capture.subcommandCalls)
	assert.Equal(t, 1, translate.subcommandCalls)
}

func TestResolve_PipelineConstructionNeverFails(t *testing.T) {
	// Both stage constructions fail; the pipeline itself still resolves and
	// defers the failures to execution.
	capture := &fakeCaptureFactory{err: errors.New("capture broken")}
	translate := &fakeTranslateFactory{err: errors.New("translate broken")}
	d := newTestDispatcher(capture, translate, config.Default())

	got, err := d.Resolve(args.Arguments{Command: []string{"make"}})

	require.NoError(t, err)
	require.IsType(t, &Pipeline{}, got)

	_, execErr := got.Execute()
	assert.ErrorContains(t, execErr, "capture broken", "capture construction error surfaces first")
}

func TestIntermediatePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"compile_commands.json", "compile_commands.events.json"},
		{"out.json", "out.events.json"},
		{"build/db.json", "build/db.events.json"},
		{"noext", "noext.events.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntermediatePath(tt.output), "output %q", tt.output)
	}
}
