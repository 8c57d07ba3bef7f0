package cmd

import (
	"github.com/spf13/cobra"

	"github.com/buildscribe/buildscribe/internal/args"
	"github.com/buildscribe/buildscribe/internal/capture"
	"github.com/buildscribe/buildscribe/internal/config"
)

var (
	captureOutputFlag       string
	captureForcePreloadFlag bool
	captureForceWrapperFlag bool
	captureLibraryFlag      string
	captureWrapperFlag      string
	captureWrapperDirFlag   string
)

var captureCmd = &cobra.Command{
	Use:   "capture [flags] -- <build command>",
	Short: "Record the compiler invocations of a build",
	Long: `Capture supervises a build command and records every compiler invocation
to a JSONL event log, without translating it.

The build runs with a wrapper directory prepended to its PATH so compiler
names resolve to buildscribe shims; each shim appends one event and then
delegates to the real compiler. The build's exit code becomes the process
exit code.

Examples:
  buildscribe capture -- make all
  buildscribe capture --output build-events.json -- ninja`,
	Args: cobra.ArbitraryArgs,
	RunE: runCapture,
}

func init() { //nolint:gochecknoinits // Standard cobra pattern
	f := captureCmd.Flags()
	f.StringVarP(&captureOutputFlag, "output", "o", config.DefaultEventFile, "path of the event log")
	f.BoolVar(&captureForcePreloadFlag, "force-preload", false, "force library-preload interception")
	f.BoolVar(&captureForceWrapperFlag, "force-wrapper", false, "force compiler-wrapper interception")
	f.StringVar(&captureLibraryFlag, "library", config.DefaultLibrary, "path to the preload library")
	f.StringVar(&captureWrapperFlag, "wrapper", "", "path to the wrapper executable")
	f.StringVar(&captureWrapperDirFlag, "wrapper-dir", "", "path to the wrapper directory")

	_ = f.MarkHidden("library")
	_ = f.MarkHidden("wrapper")
	_ = f.MarkHidden("wrapper-dir")

	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, argv []string) error {
	return resolveAndRun(args.New(capture.Verb, buildCommand(cmd, argv), cmd.Flags()))
}

// buildCommand extracts the trailing build command: the tokens after "--",
// or all positionals when no separator was given.
func buildCommand(cmd *cobra.Command, argv []string) []string {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		return argv[dash:]
	}
	return argv
}
