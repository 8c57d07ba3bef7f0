package cmd

import (
	"github.com/spf13/cobra"

	"github.com/buildscribe/buildscribe/internal/args"
	"github.com/buildscribe/buildscribe/internal/config"
	"github.com/buildscribe/buildscribe/internal/translate"
)

var (
	translateInputFlag     string
	translateOutputFlag    string
	translateConfigFlag    string
	translateAppendFlag    bool
	translateRunChecksFlag bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [flags]",
	Short: "Turn a captured event log into a compilation database",
	Long: `Translate reads a JSONL event log produced by the capture stage, recognizes
the compiler invocations in it, and writes a clang-style JSON compilation
database.

Examples:
  buildscribe translate --input events.json
  buildscribe translate --input events.json --output db.json --append
  buildscribe translate --input events.json --run-checks`,
	Args: cobra.NoArgs,
	RunE: runTranslate,
}

func init() { //nolint:gochecknoinits // Standard cobra pattern
	f := translateCmd.Flags()
	f.StringVarP(&translateInputFlag, "input", "i", config.DefaultEventFile, "path of the input event log")
	f.StringVarP(&translateOutputFlag, "output", "o", config.DefaultDatabase, "path of the compilation database")
	f.StringVar(&translateConfigFlag, "config", "", "path of the config file")
	f.BoolVar(&translateAppendFlag, "append", false, "append to the output instead of overwriting it")
	f.BoolVar(&translateRunChecksFlag, "run-checks", false, "drop entries whose source file is missing on this host")

	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, _ []string) error {
	return resolveAndRun(args.New(translate.Verb, nil, cmd.Flags()))
}
