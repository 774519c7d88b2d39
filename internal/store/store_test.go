package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMemberByID(t *testing.T) {
	s := New()

	m := s.MemberByID("M001")
	if m == nil {
		t.Fatal("M001 not found")
	}
	if m.Name != "Sarah Johnson" {
		t.Errorf("name = %q", m.Name)
	}
	if m.Demographics.Tier != TierGold {
		t.Errorf("tier = %q", m.Demographics.Tier)
	}
	if len(m.Journey) != 4 {
		t.Errorf("journey events = %d, want 4", len(m.Journey))
	}

	if s.MemberByID("M999") != nil {
		t.Error("expected nil for unknown member")
	}
}

func TestMembersByName(t *testing.T) {
	s := New()

	tests := []struct {
		term string
		want int
	}{
		{"sarah", 1},
		{"SMITH", 1},
		{"s", 2},
		{"nobody", 0},
	}
	for _, tt := range tests {
		got := s.MembersByName(tt.term)
		if len(got) != tt.want {
			t.Errorf("MembersByName(%q) = %d, want %d", tt.term, len(got), tt.want)
		}
	}
}

func TestMembersByPhone(t *testing.T) {
	s := New()

	// Formatting on either side must not matter.
	for _, term := range []string{"555-123", "(555) 123", "5551234567"} {
		got := s.MembersByPhone(term)
		if len(got) != 1 || got[0].MemberID != "M001" {
			t.Errorf("MembersByPhone(%q) = %v, want M001", term, got)
		}
	}
	if got := s.MembersByPhone("no digits here"); got != nil {
		t.Errorf("MembersByPhone with no digits = %v, want nil", got)
	}
}

func TestSnapshotSeed(t *testing.T) {
	snap := New().Snapshot()

	if snap.TotalCalls != 15420 || snap.AnsweredCalls != 14890 {
		t.Errorf("call volume = %d/%d", snap.AnsweredCalls, snap.TotalCalls)
	}
	if len(snap.Agents) != 5 {
		t.Errorf("agents = %d, want 5", len(snap.Agents))
	}
	if len(snap.Campaigns) != 4 {
		t.Errorf("campaigns = %d, want 4", len(snap.Campaigns))
	}
	for _, c := range snap.Campaigns {
		if c.Conversions > c.Leads {
			t.Errorf("campaign %s: conversions %d > leads %d", c.Name, c.Conversions, c.Leads)
		}
	}
}

func TestKPIAccess(t *testing.T) {
	s := New()
	if _, ok := s.KPIDefinition("customer_satisfaction"); !ok {
		t.Error("customer_satisfaction KPI missing")
	}
	if got := s.KPIsByRole("developer"); len(got) != 0 {
		t.Errorf("developer KPIs = %d, want 0", len(got))
	}
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")

	snap := seedSnapshot()
	snap.TotalCalls = 100
	snap.AnsweredCalls = 90
	raw, err := json.Marshal(seedFile{Snapshot: snap, Members: seedMembers()})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Snapshot().TotalCalls != 100 {
		t.Errorf("totalCalls = %d, want 100", s.Snapshot().TotalCalls)
	}
	if s.MemberByID("M002") == nil {
		t.Error("members not loaded")
	}
}

func TestLoadRejectsEmptySnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	if err := os.WriteFile(path, []byte(`{"snapshot":{},"members":[]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for empty snapshot")
	}
}
