// Package cmd implements the buildadvisor command line.
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "buildadvisor",
	Short: "Item build recommendations learned from ranked games",
	Long: `buildadvisor learns which items players buy after which from a corpus of
parsed League of Legends matches, weighting wins above losses, and recommends
a build for a champion, optionally against a specific lane opponent.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Minimal logging - write directly to stdout for Docker
		log.SetFlags(log.Ltime)
		log.SetOutput(os.Stdout)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}
