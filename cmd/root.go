// Package cmd implements the buildscribe Cobra command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildscribe/buildscribe/internal/args"
	"github.com/buildscribe/buildscribe/internal/capture"
	"github.com/buildscribe/buildscribe/internal/config"
	"github.com/buildscribe/buildscribe/internal/dispatch"
	"github.com/buildscribe/buildscribe/internal/translate"
)

// Version, Commit, and Date are set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	rootOutputFlag       string
	rootAppendFlag       bool
	rootConfigFlag       string
	rootForcePreloadFlag bool
	rootForceWrapperFlag bool
	rootLibraryFlag      string
	rootWrapperFlag      string
	rootWrapperDirFlag   string
	rootSelfFlag         string
)

var rootCmd = &cobra.Command{
	Use:   "buildscribe [flags] -- <build command>",
	Short: "Generate a compilation database by intercepting a build",
	Long: `buildscribe - compilation database generator

Supervises a build command, records every compiler invocation to an event
log, and translates the log into a clang-style compile_commands.json.

The top-level invocation runs both stages through a shared intermediate
event file that is removed afterward. Each stage can also run on its own:

  # Capture and translate in one go
  buildscribe -- make all

  # Capture only, keeping the event log
  buildscribe capture --output events.json -- make all

  # Translate a previously captured log
  buildscribe translate --input events.json --output compile_commands.json`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runRoot,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitCode carries the resolved command's result out of cobra's RunE, which
// only returns an error.
var exitCode int

// Execute runs the command tree and returns the process exit code.
func Execute() (int, error) {
	exitCode = 0
	err := rootCmd.Execute()
	return exitCode, err
}

func init() { //nolint:gochecknoinits // Standard cobra pattern
	rootCmd.SetVersionTemplate(fmt.Sprintf("buildscribe version {{.Version}} (commit: %s, built: %s)\n", Commit, Date))

	f := rootCmd.Flags()
	f.StringVarP(&rootOutputFlag, "output", "o", config.DefaultDatabase, "path of the compilation database")
	f.BoolVar(&rootAppendFlag, "append", false, "append to an existing compilation database")
	f.StringVar(&rootConfigFlag, "config", "", "path of the config file")
	f.BoolVar(&rootForcePreloadFlag, "force-preload", false, "force library-preload interception")
	f.BoolVar(&rootForceWrapperFlag, "force-wrapper", false, "force compiler-wrapper interception")
	f.StringVar(&rootLibraryFlag, "library", config.DefaultLibrary, "path to the preload library")
	f.StringVar(&rootWrapperFlag, "wrapper", "", "path to the wrapper executable")
	f.StringVar(&rootWrapperDirFlag, "wrapper-dir", "", "path to the wrapper directory")
	f.StringVar(&rootSelfFlag, "self", "", "path to the buildscribe executable")

	// Developer knobs, hidden from the regular help output.
	_ = f.MarkHidden("library")
	_ = f.MarkHidden("wrapper")
	_ = f.MarkHidden("wrapper-dir")
	_ = f.MarkHidden("self")
}

// runRoot handles the combined grammar. Cobra routes the known subcommands
// itself, so a leading positional here is an attempted subcommand that
// matches neither stage.
func runRoot(cmd *cobra.Command, argv []string) error {
	verb, command := splitPositionals(cmd, argv)
	return resolveAndRun(args.New(verb, command, cmd.Flags()))
}

// splitPositionals separates an attempted subcommand verb from the trailing
// build command. Only tokens after "--" count as the build command.
func splitPositionals(cmd *cobra.Command, argv []string) (string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		if len(argv) > 0 {
			return argv[0], nil
		}
		return "", nil
	}
	if dash > 0 {
		return argv[0], argv[dash:]
	}
	return "", argv[dash:]
}

// resolveAndRun feeds the parsed arguments through the dispatcher and runs
// whatever it resolves, recording the exit code for main.
func resolveAndRun(a args.Arguments) error {
	d := &dispatch.Dispatcher{
		NewCapture: func(cfg config.Capture) dispatch.CaptureFactory {
			return capture.NewFactory(cfg)
		},
		NewTranslate: func(cfg config.Translate) dispatch.TranslateFactory {
			return translate.NewFactory(cfg)
		},
		LoadConfig: config.Load,
	}

	resolved, err := d.Resolve(a)
	if err != nil {
		return err
	}

	code, err := resolved.Execute()
	if err != nil {
		return err
	}
	exitCode = code
	return nil
}
