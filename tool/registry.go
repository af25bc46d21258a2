package tool

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps tool ids to their implementations. Registration normally
// happens once at startup; lookups dominate afterwards, so reads take the
// shared lock.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool, failing with ErrDuplicateTool if its id is taken.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := t.Definition().ID
	if _, exists := r.tools[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, id)
	}
	r.tools[id] = t
	return nil
}

// Get returns the tool with the given id, or nil if absent.
func (r *Registry) Get(id string) Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[id]
}

// Definition returns the descriptor for id; ok is false when absent.
func (r *Registry) Definition(id string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[id]
	if !ok {
		return Definition{}, false
	}
	return t.Definition(), true
}

// Definitions resolves the given ids to descriptors, silently skipping ids
// that no longer resolve. Used to build the tool set offered to the model.
func (r *Registry) Definitions(ids []string) []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.tools[id]; ok {
			defs = append(defs, t.Definition())
		}
	}
	return defs
}

// List returns descriptors, optionally filtered by category, by default only
// active ones, ordered by id.
func (r *Registry) List(category Category, activeOnly bool) []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.tools))
	for _, t := range r.tools {
		def := t.Definition()
		if category != "" && def.Category != category {
			continue
		}
		if activeOnly && !def.Active {
			continue
		}
		defs = append(defs, def)
	}

	// Map iteration order varies between calls; sort for a stable listing.
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// Deregister removes a tool, reporting whether an entry was present.
func (r *Registry) Deregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[id]; !ok {
		return false
	}
	delete(r.tools, id)
	return true
}
