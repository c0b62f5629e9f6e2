// Package cli implements the phantomhand CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "phantomhand",
	Short: "Control the PhantomHand application shell",
	Long: `PhantomHand runs a desktop shell that supervises the gesture-recognition
backend worker. This CLI talks to the running shell: start or stop it,
query or restart the backend, and read worker session logs.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(backendCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(versionCmd)
}
