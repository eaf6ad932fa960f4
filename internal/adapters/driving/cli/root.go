// Package cli implements the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/veldt-labs/winnow-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "winnow",
	Short: "Clean web-crawl corpora",
	Long: `Winnow deduplicates, language-filters, and quality-buckets
line-delimited JSON corpora in two streaming passes.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
