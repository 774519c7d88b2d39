package agent

import (
	"strings"

	"github.com/callsight/callsight/internal/knowledge"
)

// Canned per-role answers for queries the degraded generator cannot match
// to a data surface.
var cannedRoleText = map[knowledge.Role]string{
	knowledge.RoleEnterpriseLeader: "Based on current performance metrics, your call center is operating at 96.6% answer rate with strong customer satisfaction scores. Revenue impact from recent campaigns shows positive trends.",
	knowledge.RoleSupervisor:       "Your team is performing well today. Sarah Johnson leads with 52 calls handled and a 4.8 satisfaction score. Consider coaching opportunities for agents with longer handle times.",
	knowledge.RoleDeveloper:        "All systems are operational. API response times are within SLA at 145ms average. Database performance is optimal with 1,247 queries per second.",
	knowledge.RoleAgent:            "You're doing great today! Your satisfaction score is above team average. Remember to use the knowledge base for quick answers to common member questions.",
}

// cannedResponse is the degraded generator used when the query pipeline
// panics. It matches coarse keywords against the live store so the user
// still gets real numbers, and falls back to a per-role stock answer.
func (a *Agent) cannedResponse(query string, role knowledge.Role) *Response {
	lower := strings.ToLower(query)
	snap := a.store.Snapshot()

	switch {
	case containsAny(lower, "kpi", "metric", "performance"):
		return &Response{
			Type:    TypeKPI,
			Content: "Here are your key performance indicators:",
			Data:    RoleKPIs(a.store, role),
		}
	case containsAny(lower, "campaign", "marketing"):
		return &Response{
			Type:    TypeChart,
			Content: "Here's your campaign performance analysis:",
			Data:    snap.Campaigns,
		}
	case containsAny(lower, "agent", "team"):
		return &Response{
			Type:    TypeChart,
			Content: "Here's your team performance overview:",
			Data:    snap.Agents,
		}
	case containsAny(lower, "call", "volume"):
		return &Response{
			Type:    TypeDashboard,
			Content: "Here's your call center dashboard:",
			Data:    snap,
		}
	}

	text, ok := cannedRoleText[role]
	if !ok {
		text = genericFallback
	}
	return &Response{Type: TypeText, Content: text}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
