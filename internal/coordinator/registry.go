// Package coordinator routes inbound requests to specialist agents and
// maintains the per-session conversation protocol around each dispatch.
package coordinator

import (
	"fmt"
	"sort"

	"github.com/guruai/guruai/internal/specialist"
	"github.com/guruai/guruai/pkg/models"
)

// Registry is the static capability table: a closed mapping from skill
// identifiers to the specialist agents that serve them. It is populated
// once at startup and read-only afterwards, so lookups take no lock.
type Registry struct {
	agents map[models.AgentID]specialist.Agent
	skills map[string]specialist.Agent
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		agents: make(map[models.AgentID]specialist.Agent),
		skills: make(map[string]specialist.Agent),
	}
}

// Register adds an agent and claims its skills. Registering a duplicate
// agent ID or a skill already claimed by another agent fails: the
// capability table must stay unambiguous.
func (r *Registry) Register(a specialist.Agent) error {
	if _, exists := r.agents[a.ID()]; exists {
		return fmt.Errorf("agent %q already registered", a.ID())
	}
	for _, skill := range a.Skills() {
		if owner, claimed := r.skills[skill]; claimed {
			return fmt.Errorf("skill %q already claimed by agent %q", skill, owner.ID())
		}
	}
	r.agents[a.ID()] = a
	for _, skill := range a.Skills() {
		r.skills[skill] = a
	}
	return nil
}

// BySkill returns the agent claiming the given skill identifier.
func (r *Registry) BySkill(skill string) (specialist.Agent, bool) {
	a, ok := r.skills[skill]
	return a, ok
}

// ByID returns a registered agent by its identifier.
func (r *Registry) ByID(id models.AgentID) (specialist.Agent, bool) {
	a, ok := r.agents[id]
	return a, ok
}

// AgentIDs returns the registered agent identifiers in sorted order.
func (r *Registry) AgentIDs() []models.AgentID {
	ids := make([]models.AgentID, 0, len(r.agents))
	for id := range r.agents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
