package agent

import (
	"fmt"

	"github.com/callsight/callsight/internal/knowledge"
	"github.com/callsight/callsight/internal/store"
	"github.com/callsight/callsight/internal/tools"
)

// KPICard is one tile of the role dashboard grid.
type KPICard struct {
	Label  string  `json:"label"`
	Value  string  `json:"value"`
	Change float64 `json:"change,omitempty"`
	Trend  string  `json:"trend"`
	Color  string  `json:"color"`
}

// RoleKPIs builds the dashboard card grid for a role: four base cards plus
// role-specific extras. Developers get synthetic system cards instead of
// call metrics. The change deltas are presentation seed values, not derived
// from history.
func RoleKPIs(st *store.Store, role knowledge.Role) []KPICard {
	snap := st.Snapshot()

	base := []KPICard{
		{
			Label:  "Total Calls Today",
			Value:  tools.FormatCount(snap.TotalCalls),
			Change: 12.5, Trend: "up", Color: "info",
		},
		{
			Label:  "Answer Rate",
			Value:  fmt.Sprintf("%.1f%%", float64(snap.AnsweredCalls)/float64(snap.TotalCalls)*100),
			Change: 3.2, Trend: "up", Color: "success",
		},
		{
			Label:  "Avg Handle Time",
			Value:  fmt.Sprintf("%d:%02d", snap.AverageHandleTime/60, snap.AverageHandleTime%60),
			Change: -5.1, Trend: "down", Color: "success",
		},
		{
			Label:  "Customer Satisfaction",
			Value:  fmt.Sprintf("%.1f", snap.CustomerSatisfaction),
			Change: 0.3, Trend: "up", Color: "success",
		},
	}

	switch role {
	case knowledge.RoleEnterpriseLeader:
		return append(base,
			KPICard{Label: "Revenue Impact", Value: "$2.4M", Change: 18.7, Trend: "up", Color: "success"},
			KPICard{Label: "Cost Per Call", Value: "$12.50", Change: -8.2, Trend: "down", Color: "success"},
		)
	case knowledge.RoleSupervisor:
		return append(base,
			KPICard{Label: "Agent Utilization", Value: fmt.Sprintf("%.1f%%", snap.AgentUtilization), Change: 5.4, Trend: "up", Color: "info"},
			KPICard{Label: "First Call Resolution", Value: fmt.Sprintf("%.1f%%", snap.FirstCallResolution), Change: 2.1, Trend: "up", Color: "success"},
		)
	case knowledge.RoleDeveloper:
		return []KPICard{
			{Label: "API Response Time", Value: "145ms", Change: -12.3, Trend: "down", Color: "success"},
			{Label: "System Uptime", Value: "99.97%", Change: 0.1, Trend: "up", Color: "success"},
			{Label: "Error Rate", Value: "0.03%", Change: -45.2, Trend: "down", Color: "success"},
			{Label: "Database Queries/sec", Value: "1,247", Change: 8.9, Trend: "up", Color: "info"},
		}
	default:
		return base
	}
}
