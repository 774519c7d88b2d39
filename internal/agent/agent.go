// Package agent implements the query pipeline: intent classification, tool
// planning, sequential execution, and response formatting.
package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/callsight/callsight/internal/knowledge"
	"github.com/callsight/callsight/internal/store"
	"github.com/callsight/callsight/internal/tools"
)

// ResponseType tags the rendering mode of a response envelope.
type ResponseType string

// Response envelope types.
const (
	TypeText       ResponseType = "text"
	TypeKPI        ResponseType = "kpi"
	TypeChart      ResponseType = "chart"
	TypeDashboard  ResponseType = "dashboard"
	TypeToolResult ResponseType = "tool_result"
	TypeKnowledge  ResponseType = "knowledge"
)

// Response is the display envelope handed to the presentation layer.
type Response struct {
	Type      ResponseType `json:"type"`
	Content   string       `json:"content"`
	Data      any          `json:"data,omitempty"`
	ToolsUsed []string     `json:"toolsUsed,omitempty"`
	Reasoning string       `json:"reasoning,omitempty"`
}

// Agent is the query processing engine. It holds only read-only
// collaborators and is safe for concurrent use.
type Agent struct {
	store      *store.Store
	classifier *Classifier
	registry   *tools.Registry
}

// New creates an agent over the given store with all analytics tools
// registered.
func New(st *store.Store) *Agent {
	registry := tools.NewRegistry()
	registry.Register(tools.NewCalculateMetricTool(st))
	registry.Register(tools.NewComparePeriodsTool(st))
	registry.Register(tools.NewAgentPerformanceTool(st))
	registry.Register(tools.NewCampaignAnalysisTool(st))
	registry.Register(tools.NewForecastDemandTool(st))
	registry.Register(tools.NewQualityAnalysisTool(st))
	registry.Register(tools.NewMemberLookupTool(st))
	registry.Register(tools.NewMemberJourneyTool(st))

	return &Agent{
		store:      st,
		classifier: NewClassifier(),
		registry:   registry,
	}
}

// Registry exposes the tool registry for metadata listing.
func (a *Agent) Registry() *tools.Registry { return a.registry }

// ProcessQuery runs one query through the pipeline and always yields a
// response. Any panic inside classification, planning, or execution is
// caught here, once, and answered with the degraded keyword generator.
func (a *Agent) ProcessQuery(ctx context.Context, query string, role knowledge.Role) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("query pipeline failed, serving degraded response", "panic", r, "role", role)
			resp = a.cannedResponse(query, role)
		}
	}()

	lower := strings.ToLower(query)
	intent := a.classifier.Classify(lower)
	plan := PlanTools(intent, lower, role)

	slog.Debug("query classified",
		"intent", intent.Type,
		"entities", intent.Entities,
		"tools", plan.Tools,
	)

	if len(plan.Tools) > 0 {
		return a.executePlan(ctx, plan)
	}
	return a.knowledgeResponse(intent, role)
}

// executePlan runs the planned tools strictly in order and formats the
// first successful result. Later tools still run even when an earlier one
// succeeds; result precedence follows plan order.
func (a *Agent) executePlan(ctx context.Context, plan ToolPlan) *Response {
	results := make([]*tools.Result, 0, len(plan.Tools))
	for i, id := range plan.Tools {
		results = append(results, a.registry.Execute(ctx, id, plan.Params[i]))
	}

	var primary *tools.Result
	for _, r := range results {
		if r.Success {
			primary = r
			break
		}
	}
	if primary == nil {
		return &Response{
			Type:      TypeText,
			Content:   "I encountered issues processing your request. Please try rephrasing your question.",
			Reasoning: plan.Reasoning,
		}
	}

	if primary.Chart != nil {
		return &Response{
			Type:      TypeChart,
			Content:   narrate(primary),
			Data:      primary.Chart,
			ToolsUsed: plan.Tools,
			Reasoning: plan.Reasoning,
		}
	}
	return &Response{
		Type:      TypeToolResult,
		Content:   narrate(primary),
		Data:      primary.Data,
		ToolsUsed: plan.Tools,
		Reasoning: plan.Reasoning,
	}
}
