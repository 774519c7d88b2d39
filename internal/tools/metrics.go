package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/callsight/callsight/internal/store"
)

// MetricData is the payload produced by calculate_metric.
type MetricData struct {
	Metric          string `json:"metric"`
	Value           string `json:"value"`
	Calculation     string `json:"calculation"`
	Benchmark       string `json:"benchmark"`
	Definition      string `json:"definition,omitempty"`
	BusinessContext string `json:"businessContext,omitempty"`
}

// CalculateMetricTool computes a single KPI display value from the snapshot.
type CalculateMetricTool struct {
	store *store.Store
}

// NewCalculateMetricTool creates the calculate_metric tool.
func NewCalculateMetricTool(st *store.Store) *CalculateMetricTool {
	return &CalculateMetricTool{store: st}
}

func (t *CalculateMetricTool) ID() string { return "calculate_metric" }

func (t *CalculateMetricTool) Describe() Descriptor {
	return Descriptor{
		ID:          t.ID(),
		Name:        "Calculate Metric",
		Description: "Calculate specific KPIs or custom metrics from raw data",
		Parameters: []Param{
			{Name: "metric_type", Type: "string", Description: "Type of metric to calculate", Required: true},
			{Name: "time_period", Type: "string", Description: "Time period for calculation", Required: false},
			{Name: "filters", Type: "object", Description: "Additional filters to apply", Required: false},
		},
		Category: "Analytics",
	}
}

type calcEntry struct {
	value       string
	calculation string
	benchmark   string
}

func (t *CalculateMetricTool) entries() (map[string]calcEntry, []string) {
	snap := t.store.Snapshot()
	answerRate := float64(snap.AnsweredCalls) / float64(snap.TotalCalls) * 100

	entries := map[string]calcEntry{
		"answer_rate": {
			value:       formatPercent(answerRate),
			calculation: fmt.Sprintf("%d answered / %d total calls", snap.AnsweredCalls, snap.TotalCalls),
			benchmark:   "Excellent (>95%)",
		},
		"avg_handle_time": {
			value:       formatMinSec(snap.AverageHandleTime),
			calculation: fmt.Sprintf("%d seconds average", snap.AverageHandleTime),
			benchmark:   "Good (4-6 minutes)",
		},
		"customer_satisfaction": {
			value:       formatScore(snap.CustomerSatisfaction),
			calculation: "Based on customer survey responses",
			benchmark:   "Good (4.0-4.5/5.0)",
		},
		"first_call_resolution": {
			value:       formatPercent(snap.FirstCallResolution),
			calculation: "Calls resolved on first contact",
			benchmark:   "Excellent (>85%)",
		},
	}
	order := []string{"answer_rate", "avg_handle_time", "customer_satisfaction", "first_call_resolution"}
	return entries, order
}

func (t *CalculateMetricTool) Execute(ctx context.Context, params map[string]any) *Result {
	var p struct {
		MetricType string `json:"metric_type" validate:"required"`
		TimePeriod string `json:"time_period"`
	}
	if err := bindParams(params, &p); err != nil {
		return Fail("calculate_metric: %v", err)
	}
	if p.TimePeriod == "" {
		p.TimePeriod = "today"
	}

	entries, order := t.entries()
	entry, ok := entries[p.MetricType]
	if !ok {
		return Fail("Metric %q not found. Available metrics: %s", p.MetricType, strings.Join(order, ", "))
	}

	data := MetricData{
		Metric:      p.MetricType,
		Value:       entry.value,
		Calculation: entry.calculation,
		Benchmark:   entry.benchmark,
	}
	if def, ok := t.store.KPIDefinition(p.MetricType); ok {
		data.Definition = def.Definition
		data.BusinessContext = def.BusinessContext
	}

	return &Result{
		Success: true,
		Data:    data,
		Message: fmt.Sprintf("Calculated %s for %s: %s", p.MetricType, p.TimePeriod, entry.value),
	}
}

// PeriodValue is one side of a period comparison.
type PeriodValue struct {
	Period string `json:"period"`
	Value  string `json:"value"`
}

// CompareData is the payload produced by compare_periods.
type CompareData struct {
	Metric    string      `json:"metric"`
	Period1   PeriodValue `json:"period1"`
	Period2   PeriodValue `json:"period2"`
	Change    string      `json:"change"`
	ChangePct float64     `json:"changePct"`
	Trend     string      `json:"trend"`
}

// TrendPoint is one point in a trend chart series.
type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// ComparePeriodsTool compares a metric across two periods. The previous
// period is synthesized from the single snapshot by a fixed offset; there is
// no historical dataset to draw from yet.
type ComparePeriodsTool struct {
	store *store.Store
}

// previousPeriodOffset is the placeholder delta subtracted from the current
// value to fabricate a previous period. Replace with a real historical
// lookup once one exists.
const previousPeriodOffset = 0.3

// NewComparePeriodsTool creates the compare_periods tool.
func NewComparePeriodsTool(st *store.Store) *ComparePeriodsTool {
	return &ComparePeriodsTool{store: st}
}

func (t *ComparePeriodsTool) ID() string { return "compare_periods" }

func (t *ComparePeriodsTool) Describe() Descriptor {
	return Descriptor{
		ID:          t.ID(),
		Name:        "Compare Time Periods",
		Description: "Compare metrics across different time periods",
		Parameters: []Param{
			{Name: "metric", Type: "string", Description: "Metric to compare", Required: true},
			{Name: "period1", Type: "string", Description: "First time period", Required: true},
			{Name: "period2", Type: "string", Description: "Second time period", Required: true},
		},
		Category: "Analytics",
	}
}

func (t *ComparePeriodsTool) Execute(ctx context.Context, params map[string]any) *Result {
	var p struct {
		Metric  string `json:"metric" validate:"required"`
		Period1 string `json:"period1" validate:"required"`
		Period2 string `json:"period2" validate:"required"`
	}
	if err := bindParams(params, &p); err != nil {
		return Fail("compare_periods: %v", err)
	}

	current := t.store.Snapshot().CustomerSatisfaction
	previous := current - previousPeriodOffset
	changePct := (current - previous) / previous * 100

	data := CompareData{
		Metric:    p.Metric,
		Period1:   PeriodValue{Period: p.Period1, Value: fmt.Sprintf("%.1f", previous)},
		Period2:   PeriodValue{Period: p.Period2, Value: fmt.Sprintf("%.1f", current)},
		Change:    fmt.Sprintf("+%.1f%%", changePct),
		ChangePct: changePct,
		Trend:     "improving",
	}

	return &Result{
		Success: true,
		Data:    data,
		Chart: &Chart{
			Type: "trend",
			Data: []TrendPoint{
				{Period: p.Period1, Value: previous},
				{Period: p.Period2, Value: current},
			},
		},
		Message: fmt.Sprintf("%s improved by %.1f%% from %s to %s", p.Metric, changePct, p.Period1, p.Period2),
	}
}
