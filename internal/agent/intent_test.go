package agent

import (
	"reflect"
	"testing"
)

func TestClassifyIntent(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name       string
		query      string
		wantType   IntentType
		wantConf   float64
		wantEntity []string
	}{
		{
			name:       "calculation with metric",
			query:      "What is our answer rate?",
			wantType:   IntentCalculation,
			wantConf:   0.8,
			wantEntity: []string{"answer_rate"},
		},
		{
			name:       "comparison with metric",
			query:      "compare satisfaction with the previous week",
			wantType:   IntentComparison,
			wantConf:   0.8,
			wantEntity: []string{"customer_satisfaction"},
		},
		{
			name:       "analysis with agents",
			query:      "analyze team performance",
			wantType:   IntentAnalysis,
			wantConf:   0.8,
			wantEntity: []string{"agents"},
		},
		{
			name:       "analysis with campaigns",
			query:      "deep dive into our marketing results",
			wantType:   IntentAnalysis,
			wantConf:   0.8,
			wantEntity: []string{"campaigns"},
		},
		{
			name:     "forecast without entities",
			query:    "predict demand for next month",
			wantType: IntentForecast,
			wantConf: 0.8,
		},
		{
			name:       "definition",
			query:      "what does fcr mean?",
			wantType:   IntentDefinition,
			wantConf:   0.8,
			wantEntity: []string{"first_call_resolution"},
		},
		{
			name:     "general fallback",
			query:    "hello there",
			wantType: IntentGeneral,
			wantConf: 0.5,
		},
		{
			name:       "first rule wins over later matches",
			query:      "calculate the trend in aht",
			wantType:   IntentCalculation,
			wantConf:   0.8,
			wantEntity: []string{"avg_handle_time"},
		},
		{
			name:       "uppercase input is normalized",
			query:      "SHOW ME THE ANSWER RATE",
			wantType:   IntentCalculation,
			wantConf:   0.8,
			wantEntity: []string{"answer_rate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.query)
			if got.Type != tt.wantType {
				t.Errorf("type = %q, want %q", got.Type, tt.wantType)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if !reflect.DeepEqual(got.Entities, tt.wantEntity) {
				t.Errorf("entities = %v, want %v", got.Entities, tt.wantEntity)
			}
		})
	}
}

// Entities must come out in table order regardless of where the keywords
// appear in the query, with each tag reported once.
func TestClassifyEntityOrder(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("show me revenue, cost and satisfaction satisfaction")
	want := []string{"customer_satisfaction", "cost_per_call", "revenue_impact"}
	if !reflect.DeepEqual(got.Entities, want) {
		t.Fatalf("entities = %v, want %v", got.Entities, want)
	}
}

func TestHasEntity(t *testing.T) {
	in := Intent{Entities: []string{"agents", "answer_rate"}}
	if !in.HasEntity("agents") {
		t.Error("HasEntity(agents) = false")
	}
	if in.HasEntity("campaigns") {
		t.Error("HasEntity(campaigns) = true for absent tag")
	}
}

// The rule table is ordered by strictly increasing priority and every rule
// must fire for at least one probe query.
func TestIntentRuleTable(t *testing.T) {
	rules := NewClassifier().Rules()
	if len(rules) != 5 {
		t.Fatalf("got %d rules, want 5", len(rules))
	}

	probes := map[IntentType]string{
		IntentCalculation: "compute the totals",
		IntentComparison:  "versus yesterday",
		IntentAnalysis:    "give me a breakdown",
		IntentForecast:    "projection for q3",
		IntentDefinition:  "help me understand this",
	}

	for i, r := range rules {
		if r.Priority != i+1 {
			t.Errorf("rule %d priority = %d, want %d", i, r.Priority, i+1)
		}
		probe, ok := probes[r.Type]
		if !ok {
			t.Errorf("rule %d has unexpected type %q", i, r.Type)
			continue
		}
		if !r.Pattern.MatchString(probe) {
			t.Errorf("rule %q does not match probe %q", r.Type, probe)
		}
	}
}
