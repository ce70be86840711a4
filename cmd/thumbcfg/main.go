// Thumbcfg manages thumbnail overlay settings for Elegoo Neptune printers.
//
// It provides an interactive settings editor, direct inspection commands,
// a G-code overlay embedder, and mDNS printer detection. Settings are
// stored in a per-user preferences file and survive across runs.
//
// Usage:
//
//	thumbcfg [command] [flags]
//
// Running without arguments launches the interactive editor.
// See 'thumbcfg --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmolenaar/thumbcfg/internal/logging"
	"github.com/jmolenaar/thumbcfg/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "thumbcfg",
	Short: "Thumbnail overlay settings for Elegoo Neptune printers",
	Long: `A standalone utility for managing thumbnail overlay settings.

Configures which print statistics appear in the corners of the
thumbnail embedded into sliced G-code, per printer model. Settings
persist in a per-user preferences file.

If no command is specified, the interactive editor will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the editor when no subcommand provided
		return runEdit(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("thumbcfg %s (commit: %s)\n", version.Version, version.Commit)
	},
}
