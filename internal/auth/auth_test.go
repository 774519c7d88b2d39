package auth

import (
	"testing"
	"time"

	"github.com/callsight/callsight/internal/knowledge"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService("test-secret", time.Hour)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantRole knowledge.Role
		wantErr  bool
	}{
		{"leader ok", "sarah.chen@callsight.io", "admin123", knowledge.RoleEnterpriseLeader, false},
		{"agent ok", "jessica.davis@callsight.io", "agent123", knowledge.RoleAgent, false},
		{"wrong password", "sarah.chen@callsight.io", "nope", "", true},
		{"unknown email", "nobody@callsight.io", "admin123", "", true},
		{"inactive user", "robert.wilson@callsight.io", "agent123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Authenticate(tt.email, tt.password)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if u.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", u.Role, tt.wantRole)
			}
		})
	}
}

func TestRoleAccess(t *testing.T) {
	svc := newTestService(t)

	leader, err := svc.Authenticate("sarah.chen@callsight.io", "admin123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got := AvailableRoles(leader); len(got) != 4 {
		t.Errorf("leader roles = %v", got)
	}
	if !CanAccessRole(leader, knowledge.RoleAgent) {
		t.Error("leader cannot assume agent view")
	}

	agent := svc.UserByID("4")
	if agent == nil {
		t.Fatal("user 4 missing")
	}
	if CanAccessRole(agent, knowledge.RoleSupervisor) {
		t.Error("agent can assume supervisor view")
	}
	if !CanAccessRole(agent, knowledge.RoleAgent) {
		t.Error("agent cannot assume own view")
	}

	supervisor := svc.UserByID("2")
	if CanAccessRole(supervisor, knowledge.RoleDeveloper) {
		t.Error("supervisor can assume developer view")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)

	u, err := svc.Authenticate("mike.rodriguez@callsight.io", "supervisor123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	token, err := svc.IssueToken(u)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "2" || claims.Role != knowledge.RoleSupervisor {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := svc.VerifyToken(token + "x"); err == nil {
		t.Fatal("expected error for tampered token")
	}

	other := NewService("other-secret", time.Hour)
	if _, err := other.VerifyToken(token); err == nil {
		t.Fatal("expected error for token signed with different secret")
	}
}

func TestExpiredToken(t *testing.T) {
	svc := NewService("test-secret", time.Nanosecond)
	u := svc.UserByID("1")

	token, err := svc.IssueToken(u)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := svc.VerifyToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}
