package cli

import (
	"fmt"
	"os"

	"github.com/callsight/callsight/internal/agent"
	"github.com/callsight/callsight/internal/config"
	"github.com/callsight/callsight/internal/knowledge"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var kpisRole string

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Print the KPI dashboard for a role",
	Run:   runKPIs,
}

func init() {
	kpisCmd.Flags().StringVarP(&kpisRole, "role", "r", "agent", "Role view (enterprise_leader, supervisor, agent, developer)")
}

func runKPIs(cmd *cobra.Command, args []string) {
	role := knowledge.Role(kpisRole)
	if !knowledge.ValidRole(role) {
		fmt.Printf("Error: unknown role %q\n", kpisRole)
		os.Exit(1)
	}

	printHeader(fmt.Sprintf("📈 CallSight KPIs (%s)", role))

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	st, err := newDataStore(cfg)
	if err != nil {
		fmt.Printf("Data error: %v\n", err)
		os.Exit(1)
	}

	for _, card := range agent.RoleKPIs(st, role) {
		change := fmt.Sprintf("%+.1f%%", card.Change)
		switch card.Trend {
		case "up":
			change = color.GreenString(change)
		case "down":
			change = color.RedString(change)
		}
		fmt.Printf("%-24s %10s  %s\n", card.Label, color.New(color.Bold).Sprint(card.Value), change)
	}
}
