package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/callsight/callsight/internal/cli.version=1.2.3"
	version = "0.4.0"
	logo    = "\n" +
		"   ____      _ _ ____  _       _     _\n" +
		"  / ___|__ _| | / ___|(_) __ _| |__ | |_\n" +
		" | |   / _` | | \\___ \\| |/ _` | '_ \\| __|\n" +
		" | |__| (_| | | |___) | | (_| | | | | |_\n" +
		"  \\____\\__,_|_|_|____/|_|\\__, |_| |_|\\__|\n" +
		"                         |___/\n"
)

var rootCmd = &cobra.Command{
	Use:   "callsight",
	Short: "CallSight - Call Center Analytics Assistant",
	Long:  color.CyanString(logo) + "\nA conversational analytics assistant for call center operations.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(kpisCmd)
	rootCmd.AddCommand(serveCmd)
}
