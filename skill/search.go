package skill

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentrun/memory"
)

// SearchSkill searches the memory store across the scopes visible to the
// caller: global plus the caller's chat and user scopes.
type SearchSkill struct {
	store memory.Store
}

// NewSearchSkill creates the builtin search skill backed by store.
func NewSearchSkill(store memory.Store) *SearchSkill {
	return &SearchSkill{store: store}
}

// Info implements Skill.
func (s *SearchSkill) Info() Info {
	return Info{
		ID:          "search",
		Name:        "Search",
		Description: "Search across messages, memories, and knowledge",
		Version:     "1.0.0",
		Capability:  CapabilitySearch,
		Builtin:     true,
		Active:      true,
	}
}

// Execute searches for params["query"], returning at most params["limit"]
// entries (default 10).
func (s *SearchSkill) Execute(_ context.Context, params map[string]any, skillCtx *Context) (map[string]any, error) {
	query, _ := params["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query is required for search")
	}

	limit := 10
	switch v := params["limit"].(type) {
	case int:
		limit = v
	case float64:
		limit = int(v)
	}

	scopes := []string{"global"}
	if skillCtx != nil {
		if skillCtx.ChatID != "" {
			scopes = append(scopes, "chat:"+skillCtx.ChatID)
		}
		if skillCtx.UserID != "" {
			scopes = append(scopes, "user:"+skillCtx.UserID)
		}
	}

	var results []memory.Entry
	for _, scope := range scopes {
		entries, err := s.store.Search(scope, query, limit-len(results))
		if err != nil {
			return nil, fmt.Errorf("memory search failed: %w", err)
		}
		results = append(results, entries...)
		if len(results) >= limit {
			break
		}
	}

	return map[string]any{
		"results": results,
		"count":   len(results),
		"query":   query,
	}, nil
}
