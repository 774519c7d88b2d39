package cli

import (
	"fmt"
	"os"

	"github.com/callsight/callsight/internal/config"
	"github.com/spf13/cobra"
)

var configureForce bool

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write a default config file",
	Run:   runConfigure,
}

func init() {
	configureCmd.Flags().BoolVarP(&configureForce, "force", "f", false, "Overwrite an existing config file")
}

func runConfigure(cmd *cobra.Command, args []string) {
	printHeader("⚙️ CallSight Configure")

	path, err := config.ConfigPath()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := os.Stat(path); err == nil && !configureForce {
		fmt.Printf("Config already exists at %s (use --force to overwrite)\n", path)
		return
	}

	if err := config.Save(config.DefaultConfig()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Set auth.secret before exposing the gateway beyond localhost.")
}
