// Package store provides the read-only data access layer for the assistant:
// the operational call-center snapshot, member profiles, and the KPI catalog.
// A Store is constructed once at startup and never mutated, so it is safe to
// share across goroutines without locking.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/callsight/callsight/internal/knowledge"
)

// Tier is a member loyalty tier.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Channel identifies the touchpoint channel of a journey event.
type Channel string

const (
	ChannelWeb        Channel = "web"
	ChannelMobile     Channel = "mobile"
	ChannelCallCenter Channel = "call_center"
	ChannelEmail      Channel = "email"
	ChannelChat       Channel = "chat"
	ChannelStore      Channel = "store"
)

// Outcome is the terminal state of a journey event.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeAbandoned Outcome = "abandoned"
	OutcomeEscalated Outcome = "escalated"
	OutcomeConverted Outcome = "converted"
)

// Sentiment is the member's current disposition.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// CampaignRecord is one marketing campaign's performance.
// Conversions <= Leads is assumed in seed data, not enforced.
type CampaignRecord struct {
	Name        string `json:"name"`
	Leads       int    `json:"leads"`
	Conversions int    `json:"conversions"`
	Revenue     int    `json:"revenue"`
}

// AgentRecord is one call-center agent's performance.
type AgentRecord struct {
	Name          string  `json:"name"`
	CallsHandled  int     `json:"callsHandled"`
	AvgHandleTime int     `json:"avgHandleTime"`
	Satisfaction  float64 `json:"satisfaction"`
}

// Snapshot is the single static aggregate the tools compute over. There is
// no time dimension; periods are synthesized downstream.
type Snapshot struct {
	TotalCalls           int              `json:"totalCalls"`
	AnsweredCalls        int              `json:"answeredCalls"`
	AverageHandleTime    int              `json:"averageHandleTime"`
	CustomerSatisfaction float64          `json:"customerSatisfaction"`
	FirstCallResolution  float64          `json:"firstCallResolution"`
	AgentUtilization     float64          `json:"agentUtilization"`
	Campaigns            []CampaignRecord `json:"campaignPerformance"`
	Agents               []AgentRecord    `json:"agentPerformance"`
}

// Persona describes a behavioral member archetype.
type Persona struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Behaviors   []string `json:"behaviors"`
	Preferences []string `json:"preferences"`
	PainPoints  []string `json:"painPoints"`
}

// Demographics holds the static profile attributes of a member.
type Demographics struct {
	Age           int    `json:"age"`
	Location      string `json:"location"`
	Income        string `json:"income"`
	Education     string `json:"education"`
	Occupation    string `json:"occupation"`
	FamilyStatus  string `json:"familyStatus"`
	CustomerSince string `json:"customerSince"`
	Tier          Tier   `json:"tier"`
}

// JourneyEvent is one touchpoint interaction in a member's history.
type JourneyEvent struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Touchpoint string         `json:"touchpoint"`
	Activity   string         `json:"activity"`
	Channel    Channel        `json:"channel"`
	Outcome    Outcome        `json:"outcome"`
	Details    map[string]any `json:"details,omitempty"`
}

// MemberContext is the member's current state.
type MemberContext struct {
	LastInteraction time.Time `json:"lastInteraction"`
	ActiveIssues    []string  `json:"activeIssues"`
	Sentiment       Sentiment `json:"sentiment"`
	RiskScore       float64   `json:"riskScore"`
	LifetimeValue   float64   `json:"lifetimeValue"`
}

// MemberProfile is a member record with journey history and persona.
type MemberProfile struct {
	MemberID     string        `json:"memberId"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Persona      *Persona      `json:"persona"`
	Demographics Demographics  `json:"demographics"`
	Journey      []JourneyEvent `json:"journey"`
	Context      MemberContext `json:"currentContext"`
}

// Store composes the snapshot, the member directory, and the KPI catalog.
type Store struct {
	kpis     *knowledge.Base
	snapshot Snapshot
	members  []MemberProfile
	personas []Persona
	byID     map[string]*MemberProfile
}

// New builds a store from the built-in seed data.
func New() *Store {
	return build(seedSnapshot(), seedMembers())
}

// seedFile mirrors the optional JSON override layout.
type seedFile struct {
	Snapshot Snapshot        `json:"snapshot"`
	Members  []MemberProfile `json:"members"`
}

// Load builds a store from a JSON seed file, replacing the built-in snapshot
// and member directory. The KPI catalog is always the built-in one.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var sf seedFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if sf.Snapshot.TotalCalls == 0 {
		return nil, fmt.Errorf("seed file %s: snapshot has no call volume", path)
	}
	return build(sf.Snapshot, sf.Members), nil
}

func build(snap Snapshot, members []MemberProfile) *Store {
	s := &Store{
		kpis:     knowledge.NewBase(),
		snapshot: snap,
		members:  members,
		personas: seedPersonas(),
		byID:     make(map[string]*MemberProfile),
	}
	for i := range s.members {
		s.byID[s.members[i].MemberID] = &s.members[i]
	}
	return s
}

// KPIs exposes the KPI catalog.
func (s *Store) KPIs() *knowledge.Base { return s.kpis }

// KPIDefinition returns the KPI with the given id.
func (s *Store) KPIDefinition(id string) (*knowledge.KPIDefinition, bool) {
	return s.kpis.Definition(id)
}

// KPIsByRole returns the KPIs relevant to a role.
func (s *Store) KPIsByRole(role knowledge.Role) []knowledge.KPIDefinition {
	return s.kpis.ByRole(role)
}

// Snapshot returns the operational snapshot.
func (s *Store) Snapshot() Snapshot { return s.snapshot }

// Personas returns the member persona archetypes.
func (s *Store) Personas() []Persona { return s.personas }

// Members returns the full member directory.
func (s *Store) Members() []MemberProfile {
	out := make([]MemberProfile, len(s.members))
	copy(out, s.members)
	return out
}

// MemberByID returns the member with the given id, or nil.
func (s *Store) MemberByID(id string) *MemberProfile {
	return s.byID[id]
}

// MembersByName returns members whose name contains the term,
// case-insensitive. Empty on no match, never nil-panics.
func (s *Store) MembersByName(term string) []*MemberProfile {
	term = strings.ToLower(term)
	var out []*MemberProfile
	for i := range s.members {
		if strings.Contains(strings.ToLower(s.members[i].Name), term) {
			out = append(out, &s.members[i])
		}
	}
	return out
}

// MembersByPhone returns members whose phone number contains the term.
// Both sides are reduced to digits before matching, so formatting
// differences between the query and the stored number do not matter.
func (s *Store) MembersByPhone(term string) []*MemberProfile {
	digits := digitsOnly(term)
	if digits == "" {
		return nil
	}
	var out []*MemberProfile
	for i := range s.members {
		if strings.Contains(digitsOnly(s.members[i].Phone), digits) {
			out = append(out, &s.members[i])
		}
	}
	return out
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
