// Package config defines the nested per-stage settings and loads them from
// defaults, an optional YAML file, and explicit command-line flags.
package config

// Capture holds the settings of the compiler-invocation capture stage.
type Capture struct {
	// OutputFile is the event log path the stage writes.
	OutputFile string `yaml:"output"`
	// ForcePreload and ForceWrapper select the interception mechanism.
	// At most one may be set.
	ForcePreload bool `yaml:"force_preload"`
	ForceWrapper bool `yaml:"force_wrapper"`
	// Library is the preload library injected via LD_PRELOAD in preload mode.
	Library string `yaml:"library"`
	// Wrapper is the executable the wrapper symlinks point at. Empty means
	// the buildscribe binary itself.
	Wrapper string `yaml:"wrapper"`
	// WrapperDir, when set, is used instead of a per-run temporary directory.
	WrapperDir string `yaml:"wrapper_dir"`
}

// Translate holds the settings of the event-to-database translation stage.
type Translate struct {
	// InputFile is the event log the stage reads.
	InputFile string `yaml:"input"`
	// OutputFile is the compilation database path.
	OutputFile string `yaml:"output"`
	// Append merges new entries into an existing database instead of
	// overwriting it.
	Append bool `yaml:"append"`
	// RunChecks drops entries whose source file does not exist on this host.
	RunChecks bool `yaml:"run_checks"`
	// Compilers are extra compiler names recognized in addition to the
	// built-in set.
	Compilers []string `yaml:"compilers"`
}

// Config is the full nested configuration for one invocation.
type Config struct {
	Capture   Capture   `yaml:"capture"`
	Translate Translate `yaml:"translate"`
}

// Stage output defaults. The combined grammar derives its intermediate event
// file path from DefaultDatabase at dispatch time.
const (
	DefaultEventFile = "events.json"
	DefaultDatabase  = "compile_commands.json"
	DefaultLibrary   = "/usr/local/lib/buildscribe/libexec.so"
)

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Capture: Capture{
			OutputFile: DefaultEventFile,
			Library:    DefaultLibrary,
		},
		Translate: Translate{
			InputFile:  DefaultEventFile,
			OutputFile: DefaultDatabase,
		},
	}
}
