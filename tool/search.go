package tool

import (
	"context"

	"github.com/hupe1980/agentrun/internal/util"
	"github.com/hupe1980/agentrun/memory"
)

// SearchTool searches across stored memories in every scope visible to the
// caller (global plus the caller's chat and user scopes).
type SearchTool struct {
	store memory.Store
}

// NewSearchTool constructs a search tool over the given store.
func NewSearchTool(store memory.Store) *SearchTool {
	return &SearchTool{store: store}
}

// Definition implements Tool.
func (t *SearchTool) Definition() Definition {
	return Definition{
		ID:          "search",
		Name:        "search",
		Category:    CategorySearch,
		Description: "Search across stored memories and knowledge",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search query",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results",
				},
			},
			"required": []string{"query"},
		},
		Active: true,
	}
}

// Validate implements Tool.
func (t *SearchTool) Validate(params map[string]any) error {
	return util.ValidateParameters(params, t.Definition().InputSchema)
}

// Execute implements Tool.
func (t *SearchTool) Execute(_ context.Context, params map[string]any, callCtx *CallContext) (any, error) {
	query, _ := params["query"].(string)
	if query == "" {
		return nil, NewToolError("search", "query is required", "VALIDATION_ERROR")
	}
	limit := intParam(params, "limit", 10)

	scopes := []string{"global"}
	if callCtx != nil && callCtx.ChatID != "" {
		scopes = append(scopes, "chat:"+callCtx.ChatID)
	}
	if callCtx != nil && callCtx.UserID != "" {
		scopes = append(scopes, "user:"+callCtx.UserID)
	}

	var results []memory.Entry
	for _, scope := range scopes {
		if limit > 0 && len(results) >= limit {
			break
		}
		entries, err := t.store.Search(scope, query, limit-len(results))
		if err != nil {
			return nil, err
		}
		results = append(results, entries...)
	}

	return map[string]any{
		"query":   query,
		"results": results,
		"count":   len(results),
	}, nil
}

var _ Tool = (*SearchTool)(nil)
