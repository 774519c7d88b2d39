package knowledge

import "testing"

func TestDefinitionLookup(t *testing.T) {
	b := NewBase()

	def, ok := b.Definition("answer_rate")
	if !ok {
		t.Fatal("answer_rate not found")
	}
	if def.Name != "Answer Rate" {
		t.Errorf("name = %q, want Answer Rate", def.Name)
	}
	if def.Benchmarks.Excellent != "> 95%" {
		t.Errorf("excellent benchmark = %q", def.Benchmarks.Excellent)
	}

	if _, ok := b.Definition("bogus_metric"); ok {
		t.Error("expected miss for bogus_metric")
	}
}

func TestByRole(t *testing.T) {
	b := NewBase()

	tests := []struct {
		role Role
		want int
	}{
		{RoleEnterpriseLeader, 6},
		{RoleSupervisor, 6},
		{RoleAgent, 4},
		{RoleDeveloper, 0},
	}
	for _, tt := range tests {
		got := b.ByRole(tt.role)
		if len(got) != tt.want {
			t.Errorf("ByRole(%s) = %d KPIs, want %d", tt.role, len(got), tt.want)
		}
	}
}

func TestByCategory(t *testing.T) {
	b := NewBase()

	financial := b.ByCategory("Financial Metrics")
	if len(financial) != 2 {
		t.Fatalf("financial KPIs = %d, want 2", len(financial))
	}
	if financial[0].ID != "cost_per_call" || financial[1].ID != "revenue_impact" {
		t.Errorf("catalog order not preserved: %s, %s", financial[0].ID, financial[1].ID)
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range Roles() {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%s) = false", r)
		}
	}
	if ValidRole("manager") {
		t.Error("ValidRole(manager) = true")
	}
}
