package history

import (
	"time"
)

// Turn is one persisted query/response exchange.
type Turn struct {
	ID           int64     `json:"id"`
	TurnID       string    `json:"turn_id"`
	SessionKey   string    `json:"session_key"`
	UserRole     string    `json:"user_role"`
	Query        string    `json:"query"`
	ResponseType string    `json:"response_type"`
	Content      string    `json:"content"`
	ToolsUsed    []string  `json:"tools_used,omitempty"`
	Reasoning    string    `json:"reasoning,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Bookmark is a saved assistant response a user wants to revisit.
type Bookmark struct {
	ID           int64     `json:"id"`
	BookmarkID   string    `json:"bookmark_id"`
	Owner        string    `json:"owner"`
	Title        string    `json:"title"`
	Query        string    `json:"query"`
	ResponseType string    `json:"response_type"`
	Content      string    `json:"content"`
	Data         string    `json:"data,omitempty"` // JSON payload of the response data
	Category     string    `json:"category,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Report is a generated analytics report, stored with its full payload.
type Report struct {
	ID         int64     `json:"id"`
	ReportID   string    `json:"report_id"`
	Owner      string    `json:"owner"`
	Title      string    `json:"title"`
	ReportType string    `json:"report_type"` // executive, operational, technical
	Period     string    `json:"period"`
	Payload    string    `json:"payload"` // JSON document
	CreatedAt  time.Time `json:"created_at"`
}

const Schema = `
CREATE TABLE IF NOT EXISTS turns (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	turn_id TEXT UNIQUE NOT NULL,
	session_key TEXT NOT NULL,
	user_role TEXT NOT NULL,
	query TEXT NOT NULL,
	response_type TEXT NOT NULL,
	content TEXT,
	tools_used TEXT DEFAULT '[]',
	reasoning TEXT DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_key);
CREATE INDEX IF NOT EXISTS idx_turns_created ON turns(created_at);

CREATE TABLE IF NOT EXISTS bookmarks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	bookmark_id TEXT UNIQUE NOT NULL,
	owner TEXT NOT NULL,
	title TEXT NOT NULL,
	query TEXT,
	response_type TEXT,
	content TEXT,
	data TEXT DEFAULT '',
	category TEXT DEFAULT '',
	tags TEXT DEFAULT '[]',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_owner ON bookmarks(owner);
CREATE INDEX IF NOT EXISTS idx_bookmarks_category ON bookmarks(category);

CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id TEXT UNIQUE NOT NULL,
	owner TEXT NOT NULL,
	title TEXT NOT NULL,
	report_type TEXT NOT NULL,
	period TEXT,
	payload TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reports_owner ON reports(owner);
CREATE INDEX IF NOT EXISTS idx_reports_type ON reports(report_type);
`
