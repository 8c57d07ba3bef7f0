package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/buildscribe/buildscribe/internal/args"
)

// Load builds the effective configuration for one invocation: compiled
// defaults, then the YAML file named by --config (strict field validation),
// then explicit flags, in that precedence order.
func Load(a args.Arguments) (Config, error) {
	cfg := Default()

	if path, ok := a.String("config"); ok && path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyFlags(&cfg, a)
	return cfg, nil
}

// loadFile merges the YAML file at path into cfg. Unknown fields are an
// error so typos in config files surface instead of being silently dropped.
func loadFile(cfg *Config, path string) error {
	f, err := os.Open(path) //nolint:gosec // user-provided config path
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if err == io.EOF {
			return fmt.Errorf("empty config file: %s", path)
		}
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyFlags overlays explicitly-set flags onto cfg. The meaning of --output
// depends on the grammar in use: for the capture subcommand it names the
// event file, otherwise the compilation database.
func applyFlags(cfg *Config, a args.Arguments) {
	switch a.Verb {
	case "capture":
		if v, ok := a.String("output"); ok {
			cfg.Capture.OutputFile = v
		}
		applyCaptureFlags(&cfg.Capture, a)
	case "translate":
		if v, ok := a.String("input"); ok {
			cfg.Translate.InputFile = v
		}
		if v, ok := a.String("output"); ok {
			cfg.Translate.OutputFile = v
		}
		if a.Changed("append") {
			cfg.Translate.Append = a.Bool("append")
		}
		if a.Changed("run-checks") {
			cfg.Translate.RunChecks = a.Bool("run-checks")
		}
	default:
		if v, ok := a.String("output"); ok {
			cfg.Translate.OutputFile = v
		}
		if a.Changed("append") {
			cfg.Translate.Append = a.Bool("append")
		}
		applyCaptureFlags(&cfg.Capture, a)
	}
}

func applyCaptureFlags(c *Capture, a args.Arguments) {
	if a.Changed("force-preload") {
		c.ForcePreload = a.Bool("force-preload")
	}
	if a.Changed("force-wrapper") {
		c.ForceWrapper = a.Bool("force-wrapper")
	}
	if v, ok := a.String("library"); ok {
		c.Library = v
	}
	if v, ok := a.String("wrapper"); ok {
		c.Wrapper = v
	}
	if v, ok := a.String("wrapper-dir"); ok {
		c.WrapperDir = v
	}
}
