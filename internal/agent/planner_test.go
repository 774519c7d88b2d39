package agent

import (
	"reflect"
	"testing"

	"github.com/callsight/callsight/internal/knowledge"
)

func TestPlanTools(t *testing.T) {
	tests := []struct {
		name       string
		intent     Intent
		wantTools  []string
		wantParams map[string]any
	}{
		{
			name:      "calculation plans metric tool with first entity",
			intent:    Intent{Type: IntentCalculation, Entities: []string{"answer_rate", "cost_per_call"}},
			wantTools: []string{"calculate_metric"},
			wantParams: map[string]any{
				"metric_type": "answer_rate",
				"time_period": "today",
			},
		},
		{
			name:      "comparison plans period comparison",
			intent:    Intent{Type: IntentComparison, Entities: []string{"customer_satisfaction"}},
			wantTools: []string{"compare_periods"},
			wantParams: map[string]any{
				"metric":  "customer_satisfaction",
				"period1": "last_week",
				"period2": "this_week",
			},
		},
		{
			name:      "analysis with agents plans agent performance",
			intent:    Intent{Type: IntentAnalysis, Entities: []string{"agents"}},
			wantTools: []string{"agent_performance"},
			wantParams: map[string]any{
				"metrics":   []string{"satisfaction", "callsHandled"},
				"benchmark": true,
			},
		},
		{
			name:      "analysis with campaigns plans campaign analysis",
			intent:    Intent{Type: IntentAnalysis, Entities: []string{"campaigns"}},
			wantTools: []string{"campaign_analysis"},
			wantParams: map[string]any{
				"metrics": []string{"conversions", "revenue"},
			},
		},
		{
			name:      "forecast always plans forecasting",
			intent:    Intent{Type: IntentForecast},
			wantTools: []string{"forecast_demand"},
			wantParams: map[string]any{
				"forecast_period": "next_month",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanTools(tt.intent, "", knowledge.RoleSupervisor)
			if !reflect.DeepEqual(plan.Tools, tt.wantTools) {
				t.Fatalf("tools = %v, want %v", plan.Tools, tt.wantTools)
			}
			if len(plan.Params) != 1 {
				t.Fatalf("got %d param sets, want 1", len(plan.Params))
			}
			if !reflect.DeepEqual(plan.Params[0], tt.wantParams) {
				t.Errorf("params = %v, want %v", plan.Params[0], tt.wantParams)
			}
			if plan.Reasoning == "" {
				t.Error("reasoning is empty")
			}
		})
	}
}

func TestPlanToolsNoRule(t *testing.T) {
	intents := []Intent{
		{Type: IntentCalculation},                          // no entities
		{Type: IntentComparison},                           // no entities
		{Type: IntentAnalysis, Entities: []string{"cost_per_call"}}, // no agents/campaigns tag
		{Type: IntentDefinition, Entities: []string{"answer_rate"}},
		{Type: IntentGeneral},
	}

	for _, in := range intents {
		plan := PlanTools(in, "", knowledge.RoleAgent)
		if len(plan.Tools) != 0 {
			t.Errorf("intent %q planned tools %v, want none", in.Type, plan.Tools)
		}
		if plan.Reasoning != noToolsReasoning {
			t.Errorf("intent %q reasoning = %q, want %q", in.Type, plan.Reasoning, noToolsReasoning)
		}
	}
}
