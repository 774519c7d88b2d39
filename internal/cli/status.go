package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/callsight/callsight/internal/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("🏷️ CallSight Version")
		fmt.Printf("Version: %s\n", version)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("📊 CallSight Status")
		fmt.Printf("Version: %s\n", version)

		// Check config
		if path, err := config.ConfigPath(); err == nil {
			if _, err := os.Stat(path); err == nil {
				fmt.Println("Config:  ✓ Found (" + path + ")")
			} else {
				fmt.Println("Config:  ✗ Not found (run 'callsight configure' first)")
			}
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Config error: %v\n", err)
			return
		}

		if _, err := os.Stat(filepath.Join(cfg.Paths.DataDir, "history.db")); err == nil {
			fmt.Println("History: ✓ Found")
		} else {
			fmt.Println("History: ✗ Not found (created on first serve)")
		}

		if cfg.Auth.Secret != "" {
			fmt.Println("Auth:    ✓ Secret configured")
		} else {
			fmt.Println("Auth:    ✗ No secret (tokens reset on restart)")
		}

		if cfg.Channels.Slack.Enabled {
			fmt.Println("Slack:   ✓ Enabled")
		} else {
			fmt.Println("Slack:   - Disabled")
		}

		if len(cfg.Stream.Brokers) > 0 {
			fmt.Printf("Stream:  ✓ %d broker(s), topic %s\n", len(cfg.Stream.Brokers), cfg.Stream.Topic)
		} else {
			fmt.Println("Stream:  - Disabled")
		}

		fmt.Printf("Gateway: http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	},
}
