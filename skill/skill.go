// Package skill provides modular capabilities agents can invoke outside the
// tool gate, such as deterministic summarization and memory search, plus a
// registry for looking them up.
package skill

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateSkill is returned when registering a skill whose id is taken.
var ErrDuplicateSkill = errors.New("skill already registered")

// Capability classifies what a skill does.
type Capability string

const (
	CapabilitySearch    Capability = "search"
	CapabilitySummarize Capability = "summarize"
	CapabilityExtract   Capability = "extract"
	CapabilityGenerate  Capability = "generate"
	CapabilityValidate  Capability = "validate"
	CapabilityTransform Capability = "transform"
)

// Info is a skill's metadata.
type Info struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Version     string     `json:"version"`
	Capability  Capability `json:"capability"`
	Builtin     bool       `json:"builtin"`
	Active      bool       `json:"active"`
}

// Context carries caller identity into a skill execution.
type Context struct {
	AgentID  string         `json:"agent_id"`
	JobID    string         `json:"job_id"`
	ChatID   string         `json:"chat_id"`
	UserID   string         `json:"user_id,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Skill is a named capability with free-form parameters and results.
type Skill interface {
	// Info returns the skill's metadata.
	Info() Info

	// Execute runs the skill. Parameter validation failures surface as errors.
	Execute(ctx context.Context, params map[string]any, skillCtx *Context) (map[string]any, error)
}

// Registry manages skill registration and lookup. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	skills map[string]Skill
}

// NewRegistry creates an empty skill registry.
func NewRegistry() *Registry {
	return &Registry{skills: make(map[string]Skill)}
}

// Register adds a skill. Registering an id twice is an error.
func (r *Registry) Register(s Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := s.Info().ID
	if _, exists := r.skills[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSkill, id)
	}
	r.skills[id] = s
	return nil
}

// Get returns the skill with the given id, or nil if absent.
func (r *Registry) Get(id string) Skill {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.skills[id]
}

// List returns skill metadata, optionally filtered by capability and
// active state.
func (r *Registry) List(capability Capability, activeOnly bool) []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Info
	for _, s := range r.skills {
		info := s.Info()
		if capability != "" && info.Capability != capability {
			continue
		}
		if activeOnly && !info.Active {
			continue
		}
		out = append(out, info)
	}
	return out
}

// Deregister removes a skill, reporting whether it was present.
func (r *Registry) Deregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.skills[id]; !exists {
		return false
	}
	delete(r.skills, id)
	return true
}
