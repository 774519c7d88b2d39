package session

import (
	"testing"

	"github.com/callsight/callsight/internal/knowledge"
)

func TestSessionHistory(t *testing.T) {
	s := NewSession("web:alice", knowledge.RoleSupervisor)
	s.AddUserMessage("what is our answer rate")
	s.AddAssistantMessage("Calculated answer_rate for today: 96.6%", "tool_result", []string{"calculate_metric"})
	s.AddUserMessage("thanks")

	all := s.History(10)
	if len(all) != 3 {
		t.Fatalf("got %d messages, want 3", len(all))
	}
	if all[1].Role != "assistant" || all[1].ResponseType != "tool_result" {
		t.Errorf("assistant turn = %+v", all[1])
	}

	recent := s.History(2)
	if len(recent) != 2 {
		t.Fatalf("got %d recent messages, want 2", len(recent))
	}
	if recent[0].Content != "Calculated answer_rate for today: 96.6%" {
		t.Errorf("recent[0] = %q", recent[0].Content)
	}

	s.Clear()
	if len(s.History(10)) != 0 {
		t.Error("history not empty after Clear")
	}
	if s.Role() != knowledge.RoleSupervisor {
		t.Error("role lost after Clear")
	}
}

func TestSessionMemberSelection(t *testing.T) {
	s := NewSession("web:bob", knowledge.RoleAgent)
	if s.Member() != "" {
		t.Errorf("initial member = %q", s.Member())
	}
	s.SelectMember("M001")
	if s.Member() != "M001" {
		t.Errorf("member = %q, want M001", s.Member())
	}
	s.SelectMember("")
	if s.Member() != "" {
		t.Error("member selection not cleared")
	}
}

func TestManagerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	s := m.GetOrCreate("web:carol", knowledge.RoleEnterpriseLeader)
	s.AddUserMessage("forecast next month")
	s.AddAssistantMessage("Demand forecast for next_month", "chart", []string{"forecast_demand"})
	s.SelectMember("M002")
	if err := m.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A fresh manager must read it back from disk.
	m2 := NewManager(dir)
	got := m2.GetOrCreate("web:carol", knowledge.RoleAgent)
	if got.Role() != knowledge.RoleEnterpriseLeader {
		t.Errorf("role = %q, want enterprise leader from disk", got.Role())
	}
	if got.Member() != "M002" {
		t.Errorf("member = %q, want M002", got.Member())
	}
	msgs := got.History(10)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[1].ResponseType != "chart" {
		t.Errorf("responseType = %q", msgs[1].ResponseType)
	}

	infos := m2.List()
	if len(infos) != 1 {
		t.Fatalf("got %d sessions, want 1", len(infos))
	}
	if infos[0].Key != "web:carol" {
		t.Errorf("key = %q", infos[0].Key)
	}
	if infos[0].UserRole != knowledge.RoleEnterpriseLeader {
		t.Errorf("listed role = %q", infos[0].UserRole)
	}

	if !m2.Delete("web:carol") {
		t.Fatal("Delete returned false")
	}
	if len(m2.List()) != 0 {
		t.Error("session still listed after delete")
	}
}
