package tools

import (
	"context"
	"fmt"
	"math"

	"github.com/callsight/callsight/internal/store"
)

// MemberInfo is the condensed view of a member returned by member_lookup.
type MemberInfo struct {
	Name          string          `json:"name"`
	Tier          store.Tier      `json:"tier"`
	Sentiment     store.Sentiment `json:"sentiment"`
	RiskScore     float64         `json:"riskScore"`
	LifetimeValue float64         `json:"lifetimeValue"`
	ActiveIssues  []string        `json:"activeIssues"`
	Persona       string          `json:"persona"`
}

// LookupData is the payload produced by member_lookup. Only the first match
// is carried; SearchResults reports how many matched in total.
type LookupData struct {
	Member        *store.MemberProfile `json:"member"`
	SearchResults int                  `json:"searchResults"`
	MemberInfo    MemberInfo           `json:"memberInfo"`
}

// MemberLookupTool finds a member by id, name, or phone number.
type MemberLookupTool struct {
	store *store.Store
}

// NewMemberLookupTool creates the member_lookup tool.
func NewMemberLookupTool(st *store.Store) *MemberLookupTool {
	return &MemberLookupTool{store: st}
}

func (t *MemberLookupTool) ID() string { return "member_lookup" }

func (t *MemberLookupTool) Describe() Descriptor {
	return Descriptor{
		ID:          t.ID(),
		Name:        "Member Information Lookup",
		Description: "Find member profile information by ID, name, or phone number",
		Parameters: []Param{
			{Name: "search_term", Type: "string", Description: "Member ID, name, or phone number", Required: true},
			{Name: "search_type", Type: "string", Description: "Type of search: id, name, or phone", Required: false},
		},
		Category: "Member Services",
	}
}

func (t *MemberLookupTool) Execute(ctx context.Context, params map[string]any) *Result {
	var p struct {
		SearchTerm string `json:"search_term"`
		SearchType string `json:"search_type" validate:"omitempty,oneof=id name phone"`
	}
	if err := bindParams(params, &p); err != nil {
		return Fail("member_lookup: %v", err)
	}
	if p.SearchTerm == "" {
		return Fail("Search term is required for member lookup")
	}

	var members []*store.MemberProfile
	switch p.SearchType {
	case "id":
		if m := t.store.MemberByID(p.SearchTerm); m != nil {
			members = []*store.MemberProfile{m}
		}
	case "phone":
		members = t.store.MembersByPhone(p.SearchTerm)
	default:
		members = t.store.MembersByName(p.SearchTerm)
	}

	if len(members) == 0 {
		return Fail("No members found for %q", p.SearchTerm)
	}

	// First match only; a chat turn surfaces a single member.
	m := members[0]
	return &Result{
		Success: true,
		Data: LookupData{
			Member:        m,
			SearchResults: len(members),
			MemberInfo: MemberInfo{
				Name:          m.Name,
				Tier:          m.Demographics.Tier,
				Sentiment:     m.Context.Sentiment,
				RiskScore:     m.Context.RiskScore,
				LifetimeValue: m.Context.LifetimeValue,
				ActiveIssues:  m.Context.ActiveIssues,
				Persona:       m.Persona.Name,
			},
		},
		Message: fmt.Sprintf("Found member: %s (%s tier, %s sentiment)", m.Name, m.Demographics.Tier, m.Context.Sentiment),
	}
}

// JourneyStats summarizes a member's touchpoint history.
type JourneyStats struct {
	TotalTouchpoints       int    `json:"totalTouchpoints"`
	ChannelsUsed           int    `json:"channelsUsed"`
	SuccessfulInteractions int    `json:"successfulInteractions"`
	EscalatedInteractions  int    `json:"escalatedInteractions"`
	JourneySpan            string `json:"journeySpan"`
}

// RecentActivity is one of the latest journey events.
type RecentActivity struct {
	Touchpoint string        `json:"touchpoint"`
	Activity   string        `json:"activity"`
	Outcome    store.Outcome `json:"outcome"`
	Timestamp  string        `json:"timestamp"`
}

// JourneyData is the payload produced by member_journey.
type JourneyData struct {
	Member         string           `json:"member"`
	JourneyStats   JourneyStats     `json:"journeyStats"`
	Insights       []string         `json:"insights"`
	RecentActivity []RecentActivity `json:"recentActivity"`
}

// MemberJourneyTool analyzes a member's journey across touchpoints.
type MemberJourneyTool struct {
	store *store.Store
}

// NewMemberJourneyTool creates the member_journey tool.
func NewMemberJourneyTool(st *store.Store) *MemberJourneyTool {
	return &MemberJourneyTool{store: st}
}

func (t *MemberJourneyTool) ID() string { return "member_journey" }

func (t *MemberJourneyTool) Describe() Descriptor {
	return Descriptor{
		ID:          t.ID(),
		Name:        "Member Journey Analysis",
		Description: "Analyze customer journey and touchpoint interactions",
		Parameters: []Param{
			{Name: "member_id", Type: "string", Description: "Member ID to analyze", Required: true},
		},
		Category: "Member Services",
	}
}

func (t *MemberJourneyTool) Execute(ctx context.Context, params map[string]any) *Result {
	var p struct {
		MemberID string `json:"member_id" validate:"required"`
	}
	if err := bindParams(params, &p); err != nil {
		return Fail("member_journey: %v", err)
	}

	m := t.store.MemberByID(p.MemberID)
	if m == nil {
		return Fail("Member with ID %q not found", p.MemberID)
	}

	journey := m.Journey
	channels := make(map[store.Channel]struct{})
	successful, escalated := 0, 0
	for _, e := range journey {
		channels[e.Channel] = struct{}{}
		switch e.Outcome {
		case store.OutcomeSuccess:
			successful++
		case store.OutcomeEscalated:
			escalated++
		}
	}

	spanDays := 0
	if len(journey) > 1 {
		span := journey[len(journey)-1].Timestamp.Sub(journey[0].Timestamp)
		spanDays = int(math.Round(span.Hours() / 24))
	}

	var insights []string
	if escalated > 0 {
		insights = append(insights, fmt.Sprintf("%d interactions required escalation", escalated))
	}
	_, hasCallCenter := channels[store.ChannelCallCenter]
	_, hasChat := channels[store.ChannelChat]
	if hasCallCenter && hasChat {
		insights = append(insights, "Customer uses both call center and chat support")
	}
	if len(journey) > 0 && float64(successful)/float64(len(journey)) > 0.8 {
		insights = append(insights, "High success rate in interactions")
	}

	recent := journey
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	activity := make([]RecentActivity, 0, len(recent))
	for _, e := range recent {
		activity = append(activity, RecentActivity{
			Touchpoint: e.Touchpoint,
			Activity:   e.Activity,
			Outcome:    e.Outcome,
			Timestamp:  e.Timestamp.Format("2006-01-02T15:04:05"),
		})
	}

	return &Result{
		Success: true,
		Data: JourneyData{
			Member: m.Name,
			JourneyStats: JourneyStats{
				TotalTouchpoints:       len(journey),
				ChannelsUsed:           len(channels),
				SuccessfulInteractions: successful,
				EscalatedInteractions:  escalated,
				JourneySpan:            fmt.Sprintf("%d days", spanDays),
			},
			Insights:       insights,
			RecentActivity: activity,
		},
		Chart: &Chart{Type: "journey_timeline", Data: journey},
		Message: fmt.Sprintf("Journey analysis for %s: %d touchpoints across %d channels over %d days",
			m.Name, len(journey), len(channels), spanDays),
	}
}
