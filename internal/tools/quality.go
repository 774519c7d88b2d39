package tools

import (
	"context"
	"fmt"

	"github.com/callsight/callsight/internal/store"
)

// QualityData is the payload produced by quality_analysis. The issue and
// improvement lists are a fixed editorial narrative.
type QualityData struct {
	OverallSatisfaction float64  `json:"overallSatisfaction"`
	FirstCallResolution float64  `json:"firstCallResolution"`
	QualityTrend        string   `json:"qualityTrend"`
	TopIssues           []string `json:"topIssues"`
	Improvements        []string `json:"improvements"`
}

// QualityAnalysisTool reports on service quality. Parameters are accepted
// for forward compatibility but do not change the analysis yet.
type QualityAnalysisTool struct {
	store *store.Store
}

// NewQualityAnalysisTool creates the quality_analysis tool.
func NewQualityAnalysisTool(st *store.Store) *QualityAnalysisTool {
	return &QualityAnalysisTool{store: st}
}

func (t *QualityAnalysisTool) ID() string { return "quality_analysis" }

func (t *QualityAnalysisTool) Describe() Descriptor {
	return Descriptor{
		ID:          t.ID(),
		Name:        "Quality Score Analysis",
		Description: "Analyze call quality and customer satisfaction trends",
		Parameters: []Param{
			{Name: "quality_metric", Type: "string", Description: "Specific quality metric", Required: true},
			{Name: "segment", Type: "string", Description: "Customer or call segment", Required: false},
		},
		Category: "Quality",
	}
}

func (t *QualityAnalysisTool) Execute(ctx context.Context, params map[string]any) *Result {
	var p struct {
		QualityMetric string `json:"quality_metric"`
		Segment       string `json:"segment"`
	}
	if err := bindParams(params, &p); err != nil {
		return Fail("quality_analysis: %v", err)
	}

	snap := t.store.Snapshot()
	data := QualityData{
		OverallSatisfaction: snap.CustomerSatisfaction,
		FirstCallResolution: snap.FirstCallResolution,
		QualityTrend:        "improving",
		TopIssues: []string{
			"Long wait times",
			"Agent knowledge gaps",
			"System technical issues",
		},
		Improvements: []string{
			"Implement callback system",
			"Enhanced agent training",
			"System upgrades",
		},
	}

	return &Result{
		Success: true,
		Data:    data,
		Message: fmt.Sprintf("Quality analysis completed. Overall satisfaction: %.1f/5.0", data.OverallSatisfaction),
	}
}
