package history

import (
	"path/filepath"
	"testing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to create history service: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestTurnLifecycle(t *testing.T) {
	svc := newTestService(t)

	turn := &Turn{
		SessionKey:   "web:alice",
		UserRole:     "supervisor",
		Query:        "analyze team performance",
		ResponseType: "chart",
		Content:      "Team performance analysis completed. Top performer: Sarah Johnson",
		ToolsUsed:    []string{"agent_performance"},
		Reasoning:    "User wants agent performance analysis",
	}
	if err := svc.RecordTurn(turn); err != nil {
		t.Fatalf("record turn: %v", err)
	}
	if turn.TurnID == "" {
		t.Fatal("turn id not generated")
	}

	if err := svc.RecordTurn(&Turn{
		SessionKey:   "web:alice",
		UserRole:     "supervisor",
		Query:        "thanks",
		ResponseType: "text",
	}); err != nil {
		t.Fatalf("record second turn: %v", err)
	}

	turns, err := svc.ListTurns("web:alice", 10)
	if err != nil {
		t.Fatalf("list turns: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Query != "analyze team performance" {
		t.Errorf("turns not ordered oldest first: %q", turns[0].Query)
	}
	if len(turns[0].ToolsUsed) != 1 || turns[0].ToolsUsed[0] != "agent_performance" {
		t.Errorf("toolsUsed = %v", turns[0].ToolsUsed)
	}

	other, err := svc.ListTurns("web:bob", 10)
	if err != nil {
		t.Fatalf("list other session: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("got %d turns for empty session", len(other))
	}
}

func TestBookmarkLifecycle(t *testing.T) {
	svc := newTestService(t)

	b := &Bookmark{
		Owner:        "alice",
		Title:        "Weekly answer rate",
		Query:        "what is our answer rate",
		ResponseType: "tool_result",
		Content:      "Calculated answer_rate for today: 96.6%",
	}
	if err := svc.AddBookmark(b); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}

	if err := svc.AddBookmark(&Bookmark{Owner: "alice"}); err == nil {
		t.Fatal("expected error for missing title")
	}

	list, err := svc.ListBookmarks("alice")
	if err != nil {
		t.Fatalf("list bookmarks: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d bookmarks, want 1", len(list))
	}

	ok, err := svc.DeleteBookmark("bob", b.BookmarkID)
	if err != nil {
		t.Fatalf("delete as other owner: %v", err)
	}
	if ok {
		t.Fatal("deleted bookmark owned by someone else")
	}

	ok, err = svc.DeleteBookmark("alice", b.BookmarkID)
	if err != nil {
		t.Fatalf("delete bookmark: %v", err)
	}
	if !ok {
		t.Fatal("bookmark not deleted")
	}
}

func TestBookmarkExportImportRoundTrip(t *testing.T) {
	svc := newTestService(t)

	for _, title := range []string{"CSAT trend", "Forecast next month"} {
		if err := svc.AddBookmark(&Bookmark{Owner: "alice", Title: title}); err != nil {
			t.Fatalf("add bookmark: %v", err)
		}
	}

	data, err := svc.ExportBookmarks("alice")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	// Importing into the same store skips existing ids.
	n, err := svc.ImportBookmarks("alice", data)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if n != 0 {
		t.Errorf("re-import created %d duplicates", n)
	}

	// A fresh store takes the full set.
	other := newTestService(t)
	n, err = other.ImportBookmarks("bob", data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d bookmarks, want 2", n)
	}
	list, err := other.ListBookmarks("bob")
	if err != nil {
		t.Fatalf("list imported: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d bookmarks, want 2", len(list))
	}

	if _, err := other.ImportBookmarks("bob", []byte("{not json")); err == nil {
		t.Fatal("expected error for malformed document")
	}
	if _, err := other.ImportBookmarks("bob", []byte(`{"version":99}`)); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}

func TestReportLifecycle(t *testing.T) {
	svc := newTestService(t)

	r := &Report{
		Owner:      "alice",
		Title:      "Executive Summary - Q1",
		ReportType: "executive",
		Period:     "last_quarter",
		Payload:    `{"insights":["answer rate above target"]}`,
	}
	if err := svc.SaveReport(r); err != nil {
		t.Fatalf("save report: %v", err)
	}

	got, err := svc.GetReport(r.ReportID)
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if got == nil || got.Title != r.Title {
		t.Fatalf("report = %+v", got)
	}

	missing, err := svc.GetReport("nope")
	if err != nil {
		t.Fatalf("get missing report: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown report id")
	}

	list, err := svc.ListReports("alice")
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d reports, want 1", len(list))
	}
}
