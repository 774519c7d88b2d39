package agent

import (
	"fmt"

	"github.com/callsight/callsight/internal/knowledge"
)

// ToolPlan is the planner's decision: which tools to run, with what
// parameters, and why. Tools[i] pairs with Params[i].
type ToolPlan struct {
	Tools     []string
	Params    []map[string]any
	Reasoning string
}

// noToolsReasoning is the reasoning string when no planning rule fires; the
// caller falls through to a knowledge response.
const noToolsReasoning = "No specific tools needed for this query"

// PlanTools maps an intent to a tool plan via a fixed rule table. Only the
// first extracted entity participates in planning.
func PlanTools(intent Intent, query string, role knowledge.Role) ToolPlan {
	switch intent.Type {
	case IntentCalculation:
		if len(intent.Entities) > 0 {
			return ToolPlan{
				Tools:     []string{"calculate_metric"},
				Params:    []map[string]any{{"metric_type": intent.Entities[0], "time_period": "today"}},
				Reasoning: fmt.Sprintf("User wants to calculate %s - using calculation tool", intent.Entities[0]),
			}
		}

	case IntentComparison:
		if len(intent.Entities) > 0 {
			return ToolPlan{
				Tools:     []string{"compare_periods"},
				Params:    []map[string]any{{"metric": intent.Entities[0], "period1": "last_week", "period2": "this_week"}},
				Reasoning: fmt.Sprintf("User wants to compare %s across time periods", intent.Entities[0]),
			}
		}

	case IntentAnalysis:
		if intent.HasEntity("agents") {
			return ToolPlan{
				Tools:     []string{"agent_performance"},
				Params:    []map[string]any{{"metrics": []string{"satisfaction", "callsHandled"}, "benchmark": true}},
				Reasoning: "User wants agent performance analysis",
			}
		}
		if intent.HasEntity("campaigns") {
			return ToolPlan{
				Tools:     []string{"campaign_analysis"},
				Params:    []map[string]any{{"metrics": []string{"conversions", "revenue"}}},
				Reasoning: "User wants campaign performance analysis",
			}
		}

	case IntentForecast:
		return ToolPlan{
			Tools:     []string{"forecast_demand"},
			Params:    []map[string]any{{"forecast_period": "next_month"}},
			Reasoning: "User wants demand forecasting",
		}
	}

	return ToolPlan{Reasoning: noToolsReasoning}
}
