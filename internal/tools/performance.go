package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/callsight/callsight/internal/store"
)

// AgentStats is the per-agent breakdown for a single-agent analysis.
type AgentStats struct {
	CallsHandled  int    `json:"callsHandled"`
	AvgHandleTime string `json:"avgHandleTime"`
	Satisfaction  string `json:"satisfaction"`
	Ranking       string `json:"ranking"`
}

// AgentDetailData is the payload for a single-agent analysis.
type AgentDetailData struct {
	Agent       string     `json:"agent"`
	Performance AgentStats `json:"performance"`
}

// TeamData is the payload for a whole-team analysis.
type TeamData struct {
	TeamSize        int                 `json:"teamSize"`
	TopPerformer    string              `json:"topPerformer"`
	AvgSatisfaction string              `json:"avgSatisfaction"`
	Agents          []store.AgentRecord `json:"agents"`
}

// AgentPerformanceTool analyzes individual or team agent performance.
type AgentPerformanceTool struct {
	store *store.Store
}

// NewAgentPerformanceTool creates the agent_performance tool.
func NewAgentPerformanceTool(st *store.Store) *AgentPerformanceTool {
	return &AgentPerformanceTool{store: st}
}

func (t *AgentPerformanceTool) ID() string { return "agent_performance" }

func (t *AgentPerformanceTool) Describe() Descriptor {
	return Descriptor{
		ID:          t.ID(),
		Name:        "Agent Performance Analysis",
		Description: "Analyze individual or team agent performance",
		Parameters: []Param{
			{Name: "agent_id", Type: "string", Description: "Specific agent ID or 'all' for team", Required: false},
			{Name: "metrics", Type: "array", Description: "List of metrics to analyze", Required: true},
			{Name: "benchmark", Type: "boolean", Description: "Include benchmark comparison", Required: false},
		},
		Category: "Performance",
	}
}

func (t *AgentPerformanceTool) Execute(ctx context.Context, params map[string]any) *Result {
	var p struct {
		AgentID   string   `json:"agent_id"`
		Metrics   []string `json:"metrics" validate:"required,min=1"`
		Benchmark bool     `json:"benchmark"`
	}
	if err := bindParams(params, &p); err != nil {
		return Fail("agent_performance: %v", err)
	}

	agents := t.store.Snapshot().Agents

	if p.AgentID != "" && p.AgentID != "all" {
		needle := strings.ToLower(p.AgentID)
		for _, a := range agents {
			if !strings.Contains(strings.ToLower(a.Name), needle) {
				continue
			}
			return &Result{
				Success: true,
				Data: AgentDetailData{
					Agent: a.Name,
					Performance: AgentStats{
						CallsHandled:  a.CallsHandled,
						AvgHandleTime: formatMinSec(a.AvgHandleTime),
						Satisfaction:  fmt.Sprintf("%.1f", a.Satisfaction),
						Ranking:       "Top 20%",
					},
				},
				Message: fmt.Sprintf("Performance analysis for %s completed", a.Name),
			}
		}
		return Fail("Agent %q not found", p.AgentID)
	}

	if len(agents) == 0 {
		return Fail("No agent records available")
	}

	// Team analysis. Ties on satisfaction keep the first-listed agent.
	top := agents[0]
	var sum float64
	for _, a := range agents {
		sum += a.Satisfaction
		if a.Satisfaction > top.Satisfaction {
			top = a
		}
	}

	return &Result{
		Success: true,
		Data: TeamData{
			TeamSize:        len(agents),
			TopPerformer:    top.Name,
			AvgSatisfaction: fmt.Sprintf("%.1f", sum/float64(len(agents))),
			Agents:          agents,
		},
		Chart: &Chart{Type: "agent_comparison", Data: agents},
		Message: fmt.Sprintf("Team performance analysis completed. Top performer: %s", top.Name),
	}
}

// CampaignStats is the per-campaign breakdown for a single-campaign analysis.
type CampaignStats struct {
	Leads          int    `json:"leads"`
	Conversions    int    `json:"conversions"`
	Revenue        string `json:"revenue"`
	ConversionRate string `json:"conversionRate"`
	RevenuePerLead string `json:"revenuePerLead"`
}

// CampaignDetailData is the payload for a single-campaign analysis.
type CampaignDetailData struct {
	Campaign    string        `json:"campaign"`
	Performance CampaignStats `json:"performance"`
}

// CampaignSummaryData is the payload for an all-campaigns analysis.
type CampaignSummaryData struct {
	TotalCampaigns int                    `json:"totalCampaigns"`
	TotalRevenue   string                 `json:"totalRevenue"`
	BestPerformer  string                 `json:"bestPerformer"`
	Campaigns      []store.CampaignRecord `json:"campaigns"`
}

// CampaignAnalysisTool analyzes marketing campaign effectiveness.
type CampaignAnalysisTool struct {
	store *store.Store
}

// NewCampaignAnalysisTool creates the campaign_analysis tool.
func NewCampaignAnalysisTool(st *store.Store) *CampaignAnalysisTool {
	return &CampaignAnalysisTool{store: st}
}

func (t *CampaignAnalysisTool) ID() string { return "campaign_analysis" }

func (t *CampaignAnalysisTool) Describe() Descriptor {
	return Descriptor{
		ID:          t.ID(),
		Name:        "Campaign Performance Analysis",
		Description: "Analyze marketing campaign effectiveness",
		Parameters: []Param{
			{Name: "campaign_id", Type: "string", Description: "Specific campaign or 'all'", Required: false},
			{Name: "metrics", Type: "array", Description: "Metrics to analyze", Required: true},
		},
		Category: "Marketing",
	}
}

func (t *CampaignAnalysisTool) Execute(ctx context.Context, params map[string]any) *Result {
	var p struct {
		CampaignID string   `json:"campaign_id"`
		Metrics    []string `json:"metrics" validate:"required,min=1"`
	}
	if err := bindParams(params, &p); err != nil {
		return Fail("campaign_analysis: %v", err)
	}

	campaigns := t.store.Snapshot().Campaigns

	if p.CampaignID != "" && p.CampaignID != "all" {
		needle := strings.ToLower(p.CampaignID)
		for _, c := range campaigns {
			if !strings.Contains(strings.ToLower(c.Name), needle) {
				continue
			}
			convRate := float64(c.Conversions) / float64(c.Leads) * 100
			perLead := float64(c.Revenue) / float64(c.Leads)
			return &Result{
				Success: true,
				Data: CampaignDetailData{
					Campaign: c.Name,
					Performance: CampaignStats{
						Leads:          c.Leads,
						Conversions:    c.Conversions,
						Revenue:        formatDollars(c.Revenue),
						ConversionRate: formatPercent(convRate),
						RevenuePerLead: fmt.Sprintf("$%.2f", perLead),
					},
				},
				Message: fmt.Sprintf("%s analysis: %.1f%% conversion rate, $%.2f per lead", c.Name, convRate, perLead),
			}
		}
		return Fail("Campaign %q not found", p.CampaignID)
	}

	if len(campaigns) == 0 {
		return Fail("No campaign records available")
	}

	// All campaigns. Best is the highest conversion ratio; ties keep the
	// first-listed campaign.
	best := campaigns[0]
	totalRevenue := 0
	for _, c := range campaigns {
		totalRevenue += c.Revenue
		if ratio(c) > ratio(best) {
			best = c
		}
	}

	return &Result{
		Success: true,
		Data: CampaignSummaryData{
			TotalCampaigns: len(campaigns),
			TotalRevenue:   formatDollars(totalRevenue),
			BestPerformer:  best.Name,
			Campaigns:      campaigns,
		},
		Chart: &Chart{Type: "campaign_performance", Data: campaigns},
		Message: fmt.Sprintf("Campaign analysis completed. Best performer: %s", best.Name),
	}
}

func ratio(c store.CampaignRecord) float64 {
	if c.Leads == 0 {
		return 0
	}
	return float64(c.Conversions) / float64(c.Leads)
}
