// Package report builds analytics report documents from bookmarked
// insights and serializes them for export.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/callsight/callsight/internal/agent"
	"github.com/callsight/callsight/internal/history"
)

// Type selects the recommendation set a report carries.
type Type string

const (
	TypeExecutive   Type = "executive"
	TypeOperational Type = "operational"
	TypeTechnical   Type = "technical"
)

// ValidType reports whether t is a known report type.
func ValidType(t Type) bool {
	switch t {
	case TypeExecutive, TypeOperational, TypeTechnical:
		return true
	}
	return false
}

// TimeRange brackets the bookmarks a report covers.
type TimeRange struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// Summary aggregates the bookmarked material.
type Summary struct {
	TotalInsights int             `json:"totalInsights"`
	Categories    []string        `json:"categories"`
	TimeRange     TimeRange       `json:"timeRange"`
	KeyMetrics    []agent.KPICard `json:"keyMetrics"`
}

// Insight is one themed section of a report.
type Insight struct {
	Category  string   `json:"category"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Bookmarks []string `json:"bookmarks"` // bookmark ids
}

// Document is a complete generated report.
type Document struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description,omitempty"`
	Type            Type               `json:"type"`
	GeneratedAt     time.Time          `json:"generatedAt"`
	Summary         Summary            `json:"summary"`
	Insights        []Insight          `json:"insights"`
	Recommendations []string           `json:"recommendations"`
	Bookmarks       []history.Bookmark `json:"bookmarks"`
}

// Options configure report generation.
type Options struct {
	Title       string
	Description string
	Type        Type
}

// Build assembles a report document from a set of bookmarks.
func Build(bookmarks []history.Bookmark, opts Options) (*Document, error) {
	if !ValidType(opts.Type) {
		return nil, fmt.Errorf("unknown report type %q", opts.Type)
	}

	now := time.Now().UTC()
	title := opts.Title
	if title == "" {
		title = "Custom Report - " + now.Format("2006-01-02")
	}

	return &Document{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     opts.Description,
		Type:            opts.Type,
		GeneratedAt:     now,
		Summary:         buildSummary(bookmarks),
		Insights:        buildInsights(bookmarks),
		Recommendations: recommendations(opts.Type),
		Bookmarks:       bookmarks,
	}, nil
}

func buildSummary(bookmarks []history.Bookmark) Summary {
	s := Summary{TotalInsights: len(bookmarks)}

	seen := map[string]bool{}
	for _, b := range bookmarks {
		if b.Category != "" && !seen[b.Category] {
			seen[b.Category] = true
			s.Categories = append(s.Categories, b.Category)
		}
		if s.TimeRange.Earliest.IsZero() || b.CreatedAt.Before(s.TimeRange.Earliest) {
			s.TimeRange.Earliest = b.CreatedAt
		}
		if b.CreatedAt.After(s.TimeRange.Latest) {
			s.TimeRange.Latest = b.CreatedAt
		}
	}

	s.KeyMetrics = extractKeyMetrics(bookmarks)
	return s
}

// extractKeyMetrics collects up to six distinct KPI cards from bookmarked
// KPI responses, keyed by label.
func extractKeyMetrics(bookmarks []history.Bookmark) []agent.KPICard {
	var metrics []agent.KPICard
	seen := map[string]bool{}

	for _, b := range bookmarks {
		if b.ResponseType != string(agent.TypeKPI) || b.Data == "" {
			continue
		}
		var cards []agent.KPICard
		if err := json.Unmarshal([]byte(b.Data), &cards); err != nil {
			continue
		}
		for _, c := range cards {
			if seen[c.Label] {
				continue
			}
			seen[c.Label] = true
			metrics = append(metrics, c)
			if len(metrics) == 6 {
				return metrics
			}
		}
	}
	return metrics
}

func buildInsights(bookmarks []history.Bookmark) []Insight {
	var insights []Insight

	var performance []string
	for _, b := range bookmarks {
		if b.Category == "Performance Analysis" || hasTag(b, "performance") {
			performance = append(performance, b.BookmarkID)
		}
	}
	if len(performance) > 0 {
		insights = append(insights, Insight{
			Category:  "Performance Analysis",
			Title:     "Team Performance Overview",
			Content:   fmt.Sprintf("Analysis based on %d performance-related insights. Key areas include agent productivity, customer satisfaction trends, and operational efficiency metrics.", len(performance)),
			Bookmarks: performance,
		})
	}

	var kpis []string
	for _, b := range bookmarks {
		if b.Category == "KPIs" || b.ResponseType == string(agent.TypeKPI) {
			kpis = append(kpis, b.BookmarkID)
		}
	}
	if len(kpis) > 0 {
		insights = append(insights, Insight{
			Category:  "Key Performance Indicators",
			Title:     "KPI Summary & Trends",
			Content:   fmt.Sprintf("Comprehensive KPI analysis covering %d key metrics. Includes current performance levels, trend analysis, and benchmark comparisons.", len(kpis)),
			Bookmarks: kpis,
		})
	}

	return insights
}

func hasTag(b history.Bookmark, tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func recommendations(t Type) []string {
	switch t {
	case TypeExecutive:
		return []string{
			"Focus on revenue-generating metrics and strategic KPIs",
			"Monitor cost efficiency and ROI across all operations",
			"Ensure customer satisfaction aligns with business objectives",
		}
	case TypeOperational:
		return []string{
			"Optimize agent utilization and scheduling",
			"Improve first-call resolution rates through training",
			"Implement quality monitoring improvements",
		}
	case TypeTechnical:
		return []string{
			"Monitor system performance and response times",
			"Ensure data accuracy and integration quality",
			"Implement automated reporting workflows",
		}
	}
	return nil
}

// exportEnvelope wraps a document with its export timestamp.
type exportEnvelope struct {
	Document
	ExportedAt time.Time `json:"exportedAt"`
}

// Export serializes a document to an indented JSON export.
func Export(doc *Document) ([]byte, error) {
	env := exportEnvelope{Document: *doc, ExportedAt: time.Now().UTC()}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// Import parses a previously exported report document.
func Import(data []byte) (*Document, error) {
	var env exportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse report export: %w", err)
	}
	if env.ID == "" || !ValidType(env.Type) {
		return nil, fmt.Errorf("invalid report export")
	}
	doc := env.Document
	return &doc, nil
}

// Filename derives the export file name the way the download UI does:
// spaces collapse to underscores, suffixed with the export date.
func Filename(doc *Document, at time.Time) string {
	name := strings.Join(strings.Fields(doc.Title), "_")
	return fmt.Sprintf("%s_%s.json", name, at.Format("2006-01-02"))
}
