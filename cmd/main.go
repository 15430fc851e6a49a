package main

import (
	"fmt"
	"os"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	language   string
	sourceFile string
)

var rootCmd = &cobra.Command{
	Use:   "judge",
	Short: "Bundle and judge competitive programming solutions locally",
	Long: `judge merges a solution with the workspace libraries it uses, compiles the
result once and runs it against the tests of the current problem.

Problems arrive from the browser extension through the local relay.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitializeLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", "", "Language from the settings file (default: the configured language)")
	rootCmd.PersistentFlags().StringVarP(&sourceFile, "file", "f", "", "Solution file relative to the workspace (default: rendered from the problem)")

	bundleCmd.Flags().StringVarP(&bundleOutput, "output", "o", "", "Write the bundle to a file instead of stdout")
	relayCmd.Flags().BoolVar(&relaySave, "save", false, "Save every received problem to the problem file")
	fetchCmd.Flags().BoolVar(&fetchOpen, "open", false, "Open the solution file in the configured editor")

	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
}
