// Package knowledge holds the static KPI catalog the assistant reasons over.
package knowledge

// Role identifies a product persona. Responses and KPI visibility are
// scoped by role.
type Role string

// Supported roles.
const (
	RoleEnterpriseLeader Role = "enterprise_leader"
	RoleSupervisor       Role = "supervisor"
	RoleDeveloper        Role = "developer"
	RoleAgent            Role = "agent"
)

// Roles returns all supported roles in access order, highest first.
func Roles() []Role {
	return []Role{RoleEnterpriseLeader, RoleSupervisor, RoleDeveloper, RoleAgent}
}

// ValidRole reports whether r is one of the supported roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleEnterpriseLeader, RoleSupervisor, RoleDeveloper, RoleAgent:
		return true
	}
	return false
}

// Benchmarks describes the performance bands for a KPI.
type Benchmarks struct {
	Excellent        string `json:"excellent"`
	Good             string `json:"good"`
	NeedsImprovement string `json:"needsImprovement"`
}

// KPIDefinition is a single catalog entry. Definitions are immutable after
// the base is constructed.
type KPIDefinition struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Definition      string     `json:"definition"`
	Formula         string     `json:"formula,omitempty"`
	Category        string     `json:"category"`
	RelevantRoles   []Role     `json:"relevantRoles"`
	BusinessContext string     `json:"businessContext"`
	Benchmarks      Benchmarks `json:"benchmarks"`
}

// RelevantTo reports whether the KPI is in scope for the given role.
func (k *KPIDefinition) RelevantTo(role Role) bool {
	for _, r := range k.RelevantRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Base is the KPI catalog with id-keyed lookups.
type Base struct {
	defs []KPIDefinition
	byID map[string]*KPIDefinition
}

// NewBase builds the catalog from the seed definitions.
func NewBase() *Base {
	b := &Base{defs: seedKPIs(), byID: make(map[string]*KPIDefinition)}
	for i := range b.defs {
		b.byID[b.defs[i].ID] = &b.defs[i]
	}
	return b
}

// Definition returns the KPI with the given id.
func (b *Base) Definition(id string) (*KPIDefinition, bool) {
	d, ok := b.byID[id]
	return d, ok
}

// ByRole returns the KPIs relevant to a role, in catalog order.
func (b *Base) ByRole(role Role) []KPIDefinition {
	var out []KPIDefinition
	for _, d := range b.defs {
		if d.RelevantTo(role) {
			out = append(out, d)
		}
	}
	return out
}

// ByCategory returns the KPIs in a category, in catalog order.
func (b *Base) ByCategory(category string) []KPIDefinition {
	var out []KPIDefinition
	for _, d := range b.defs {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// All returns every KPI definition in catalog order.
func (b *Base) All() []KPIDefinition {
	out := make([]KPIDefinition, len(b.defs))
	copy(out, b.defs)
	return out
}
