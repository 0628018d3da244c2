// Yeelan is a command-line tool for Yeelight smart lights on the local
// network.
//
// It discovers lights with the Yeelight SSDP-style multicast search,
// shows their advertised state, and issues basic control commands over
// the per-light TCP control stream.
//
// Usage:
//
//	yeelan [command] [flags]
//
// Running without arguments launches the interactive light picker.
// See 'yeelan --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/yeelan/internal/logging"
	"github.com/muurk/yeelan/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "yeelan",
	Short: "Yeelight LAN discovery and control",
	Long: `A command-line tool for Yeelight smart lights.

Discovers lights on the local network segment via multicast search and
issues basic control commands. Lights must have "LAN Control" enabled
in the Yeelight app to answer discovery queries.

If no command is specified, the interactive light picker will launch.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPicker(cmd, args)
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
		fmt.Printf("yeelan %s\n", version.Full())
	},
}
