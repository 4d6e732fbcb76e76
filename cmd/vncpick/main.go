// Vncpick is an interactive launcher for remote display sessions.
//
// It discovers candidate display servers on the local link, remembers
// recently used ones, lets the user pick or type an address on a form
// drawn by an external scene renderer, then launches and supervises the
// viewer process for the session. When a session fails, the captured
// error output is shown on the same UI and the picker reopens.
//
// Usage:
//
//	vncpick [command]
//
// Running without arguments starts the interactive session loop.
// See 'vncpick --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okranz/vncpick/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vncpick",
	Short: "Remote display session launcher",
	Long: `An interactive launcher for remote display sessions.

Discovers candidate servers on the local link, remembers recent ones,
and supervises the viewer process until the session ends.

If no command is specified, the interactive session loop starts.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, args)
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
		fmt.Printf("vncpick %s (commit: %s)\n", version.Version, version.Commit)
	},
}
