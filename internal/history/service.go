// Package history persists chat turns, bookmarks, and reports in SQLite.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Service is the SQLite-backed history store.
type Service struct {
	db *sql.DB
}

// NewService opens (or creates) the history database at dbPath.
func NewService(dbPath string) (*Service, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Service{db: db}, nil
}

// DB exposes the underlying handle for status queries.
func (s *Service) DB() *sql.DB { return s.db }

func (s *Service) Close() error {
	return s.db.Close()
}

// RecordTurn stores one exchange. A missing TurnID is generated.
func (s *Service) RecordTurn(t *Turn) error {
	if t.TurnID == "" {
		t.TurnID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	tools, _ := json.Marshal(t.ToolsUsed)

	_, err := s.db.Exec(`
		INSERT INTO turns (turn_id, session_key, user_role, query, response_type, content, tools_used, reasoning, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TurnID, t.SessionKey, t.UserRole, t.Query, t.ResponseType, t.Content, string(tools), t.Reasoning, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// ListTurns returns up to limit turns for a session, oldest first.
func (s *Service) ListTurns(sessionKey string, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT id, turn_id, session_key, user_role, query, response_type, content, tools_used, reasoning, created_at
		FROM turns WHERE session_key = ? ORDER BY id ASC LIMIT ?`, sessionKey, limit)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var tools string
		if err := rows.Scan(&t.ID, &t.TurnID, &t.SessionKey, &t.UserRole, &t.Query,
			&t.ResponseType, &t.Content, &tools, &t.Reasoning, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		_ = json.Unmarshal([]byte(tools), &t.ToolsUsed)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// AddBookmark stores a bookmark. A missing BookmarkID is generated.
func (s *Service) AddBookmark(b *Bookmark) error {
	if b.BookmarkID == "" {
		b.BookmarkID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.Title == "" {
		return fmt.Errorf("bookmark title is required")
	}

	tags, _ := json.Marshal(b.Tags)
	_, err := s.db.Exec(`
		INSERT INTO bookmarks (bookmark_id, owner, title, query, response_type, content, data, category, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.BookmarkID, b.Owner, b.Title, b.Query, b.ResponseType, b.Content, b.Data, b.Category, string(tags), b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

// ListBookmarks returns all bookmarks for an owner, newest first.
func (s *Service) ListBookmarks(owner string) ([]Bookmark, error) {
	rows, err := s.db.Query(`
		SELECT id, bookmark_id, owner, title, query, response_type, content, data, category, tags, created_at
		FROM bookmarks WHERE owner = ? ORDER BY id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		var tags string
		if err := rows.Scan(&b.ID, &b.BookmarkID, &b.Owner, &b.Title, &b.Query,
			&b.ResponseType, &b.Content, &b.Data, &b.Category, &tags, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		_ = json.Unmarshal([]byte(tags), &b.Tags)
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// DeleteBookmark removes one bookmark by its public id, scoped to the owner.
func (s *Service) DeleteBookmark(owner, bookmarkID string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM bookmarks WHERE owner = ? AND bookmark_id = ?`, owner, bookmarkID)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// bookmarkExport is the portable bookmark document format.
type bookmarkExport struct {
	Version    int        `json:"version"`
	ExportedAt time.Time  `json:"exportedAt"`
	Bookmarks  []Bookmark `json:"bookmarks"`
}

// ExportBookmarks serializes an owner's bookmarks to a portable JSON
// document.
func (s *Service) ExportBookmarks(owner string) ([]byte, error) {
	bookmarks, err := s.ListBookmarks(owner)
	if err != nil {
		return nil, err
	}
	doc := bookmarkExport{
		Version:    1,
		ExportedAt: time.Now().UTC(),
		Bookmarks:  bookmarks,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportBookmarks loads bookmarks from a previously exported document into
// the owner's collection. Entries whose bookmark_id already exists are
// skipped. Returns the number imported.
func (s *Service) ImportBookmarks(owner string, data []byte) (int, error) {
	var doc bookmarkExport
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse bookmark export: %w", err)
	}
	if doc.Version != 1 {
		return 0, fmt.Errorf("unsupported bookmark export version %d", doc.Version)
	}

	imported := 0
	for _, b := range doc.Bookmarks {
		b.Owner = owner
		if b.BookmarkID != "" {
			var exists int
			if err := s.db.QueryRow(`SELECT COUNT(1) FROM bookmarks WHERE bookmark_id = ?`, b.BookmarkID).Scan(&exists); err == nil && exists > 0 {
				continue
			}
		}
		if err := s.AddBookmark(&b); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// SaveReport stores a generated report. A missing ReportID is generated.
func (s *Service) SaveReport(r *Report) error {
	if r.ReportID == "" {
		r.ReportID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO reports (report_id, owner, title, report_type, period, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ReportID, r.Owner, r.Title, r.ReportType, r.Period, r.Payload, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetReport returns a report by its public id.
func (s *Service) GetReport(reportID string) (*Report, error) {
	var r Report
	err := s.db.QueryRow(`
		SELECT id, report_id, owner, title, report_type, period, payload, created_at
		FROM reports WHERE report_id = ?`, reportID).
		Scan(&r.ID, &r.ReportID, &r.Owner, &r.Title, &r.ReportType, &r.Period, &r.Payload, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	return &r, nil
}

// ListReports returns all reports for an owner, newest first.
func (s *Service) ListReports(owner string) ([]Report, error) {
	rows, err := s.db.Query(`
		SELECT id, report_id, owner, title, report_type, period, payload, created_at
		FROM reports WHERE owner = ? ORDER BY id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.ReportID, &r.Owner, &r.Title, &r.ReportType,
			&r.Period, &r.Payload, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
