package agent

import (
	"regexp"
	"strings"
)

// IntentType is the recognized intent category of a query.
type IntentType string

// Intent categories, in rule priority order.
const (
	IntentCalculation IntentType = "calculation"
	IntentComparison  IntentType = "comparison"
	IntentAnalysis    IntentType = "analysis"
	IntentForecast    IntentType = "forecast"
	IntentDefinition  IntentType = "definition"
	IntentGeneral     IntentType = "general"
)

// Classification confidence levels. Matching is first-regex-wins with no
// scoring, so confidence only distinguishes a rule hit from the fallback.
const (
	confidenceMatched = 0.8
	confidenceDefault = 0.5
)

// IntentRule pairs a pattern with the intent it signals. Rules are
// evaluated in priority order; the first match wins.
type IntentRule struct {
	Type     IntentType
	Priority int
	Pattern  *regexp.Regexp
}

// entityRule maps an entity tag to the query substrings that signal it.
type entityRule struct {
	id       string
	keywords []string
}

// Intent is the classified shape of a query.
type Intent struct {
	Type       IntentType
	Entities   []string
	Confidence float64
}

// HasEntity reports whether the intent carries the given entity tag.
func (i Intent) HasEntity(id string) bool {
	for _, e := range i.Entities {
		if e == id {
			return true
		}
	}
	return false
}

// Classifier maps free-text queries to intents via an ordered rule table
// and a keyword entity extractor.
type Classifier struct {
	rules    []IntentRule
	entities []entityRule
}

// NewClassifier builds the classifier with the built-in rule tables.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []IntentRule{
			{Type: IntentCalculation, Priority: 1, Pattern: regexp.MustCompile(`calculate|compute|what is|show me|current|today`)},
			{Type: IntentComparison, Priority: 2, Pattern: regexp.MustCompile(`compare|versus|vs|difference|trend|change|last|previous`)},
			{Type: IntentAnalysis, Priority: 3, Pattern: regexp.MustCompile(`analyze|analysis|performance|deep dive|insights|breakdown`)},
			{Type: IntentForecast, Priority: 4, Pattern: regexp.MustCompile(`forecast|predict|future|projection|estimate|expect`)},
			{Type: IntentDefinition, Priority: 5, Pattern: regexp.MustCompile(`what does|define|definition|meaning|explain|help me understand`)},
		},
		entities: []entityRule{
			{id: "answer_rate", keywords: []string{"answer rate", "answered calls", "service level"}},
			{id: "avg_handle_time", keywords: []string{"handle time", "aht", "call duration", "talk time"}},
			{id: "customer_satisfaction", keywords: []string{"satisfaction", "csat", "customer rating", "feedback"}},
			{id: "first_call_resolution", keywords: []string{"fcr", "first call", "resolution", "resolved"}},
			{id: "agent_utilization", keywords: []string{"utilization", "agent productivity", "efficiency"}},
			{id: "cost_per_call", keywords: []string{"cost", "expenses", "budget"}},
			{id: "revenue_impact", keywords: []string{"revenue", "sales", "income", "profit"}},
			{id: "agents", keywords: []string{"agent", "team"}},
			{id: "campaigns", keywords: []string{"campaign", "marketing"}},
		},
	}
}

// Classify maps a query to an intent. Entities come out in table order,
// not order of appearance in the query; each tag appears at most once.
func (c *Classifier) Classify(query string) Intent {
	query = strings.ToLower(query)

	var entities []string
	for _, er := range c.entities {
		for _, kw := range er.keywords {
			if strings.Contains(query, kw) {
				entities = append(entities, er.id)
				break
			}
		}
	}

	for _, rule := range c.rules {
		if rule.Pattern.MatchString(query) {
			return Intent{Type: rule.Type, Entities: entities, Confidence: confidenceMatched}
		}
	}
	return Intent{Type: IntentGeneral, Entities: entities, Confidence: confidenceDefault}
}

// Rules exposes the intent rule table so tests can enumerate coverage and
// detect overlapping patterns.
func (c *Classifier) Rules() []IntentRule {
	out := make([]IntentRule, len(c.rules))
	copy(out, c.rules)
	return out
}
