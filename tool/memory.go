package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentrun/internal/util"
	"github.com/hupe1980/agentrun/memory"
)

// resolveScope maps the scope parameter to a store scope key using the call
// context: "chat" and "user" scopes are partitioned per chat / caller,
// everything else falls back to the global scope.
func resolveScope(scope string, callCtx *CallContext) string {
	switch scope {
	case "chat":
		if callCtx != nil && callCtx.ChatID != "" {
			return "chat:" + callCtx.ChatID
		}
	case "user":
		if callCtx != nil && callCtx.UserID != "" {
			return "user:" + callCtx.UserID
		}
	}
	return "global"
}

// MemoryReadTool lets agents retrieve relevant memories for context.
type MemoryReadTool struct {
	store memory.Store
}

// NewMemoryReadTool constructs a read tool over the given store.
func NewMemoryReadTool(store memory.Store) *MemoryReadTool {
	return &MemoryReadTool{store: store}
}

// Definition implements Tool.
func (t *MemoryReadTool) Definition() Definition {
	return Definition{
		ID:          "memory_read",
		Name:        "memory_read",
		Category:    CategoryMemoryRead,
		Description: "Retrieve relevant memories from the shared memory system",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search query for memory retrieval",
				},
				"scope": map[string]any{
					"type":        "string",
					"enum":        []string{"global", "chat", "user"},
					"description": "Memory scope to search",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of entries to return",
				},
			},
			"required": []string{"query"},
		},
		Active: true,
	}
}

// Validate implements Tool.
func (t *MemoryReadTool) Validate(params map[string]any) error {
	return util.ValidateParameters(params, t.Definition().InputSchema)
}

// Execute implements Tool.
func (t *MemoryReadTool) Execute(_ context.Context, params map[string]any, callCtx *CallContext) (any, error) {
	query, _ := params["query"].(string)
	if query == "" {
		return nil, NewToolError("memory_read", "query is required", "VALIDATION_ERROR")
	}

	scope, _ := params["scope"].(string)
	limit := intParam(params, "limit", 10)

	entries, err := t.store.Search(resolveScope(scope, callCtx), query, limit)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"query":    query,
		"scope":    scope,
		"memories": entries,
		"count":    len(entries),
	}, nil
}

// MemoryWriteTool lets agents store important information in memory. Writes
// require an authenticated caller and are rate limited.
type MemoryWriteTool struct {
	store memory.Store
}

// NewMemoryWriteTool constructs a write tool over the given store.
func NewMemoryWriteTool(store memory.Store) *MemoryWriteTool {
	return &MemoryWriteTool{store: store}
}

// Definition implements Tool.
func (t *MemoryWriteTool) Definition() Definition {
	return Definition{
		ID:          "memory_write",
		Name:        "memory_write",
		Category:    CategoryMemoryWrite,
		Description: "Store information in the shared memory system",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"kind": map[string]any{
					"type":        "string",
					"enum":        []string{"summary", "decision", "action", "knowledge"},
					"description": "Type of memory entry",
				},
				"scope": map[string]any{
					"type":        "string",
					"enum":        []string{"global", "chat", "user"},
					"description": "Memory scope",
				},
				"summary": map[string]any{
					"type":        "string",
					"description": "Brief summary of the memory",
				},
				"content": map[string]any{
					"type":        "string",
					"description": "Detailed content",
				},
				"tags": map[string]any{
					"type":        "array",
					"description": "Tags for organization",
				},
			},
			"required": []string{"kind", "scope", "summary"},
		},
		RequiresAuth: true,
		RateLimit:    30,
		RateWindow:   time.Minute,
		Active:       true,
	}
}

// Validate implements Tool.
func (t *MemoryWriteTool) Validate(params map[string]any) error {
	return util.ValidateParameters(params, t.Definition().InputSchema)
}

// Execute implements Tool.
func (t *MemoryWriteTool) Execute(_ context.Context, params map[string]any, callCtx *CallContext) (any, error) {
	kind, _ := params["kind"].(string)
	scope, _ := params["scope"].(string)
	summary, _ := params["summary"].(string)
	if kind == "" || scope == "" || summary == "" {
		return nil, NewToolError("memory_write", "kind, scope, and summary are required", "VALIDATION_ERROR")
	}

	content, _ := params["content"].(string)

	entry := memory.Entry{
		Scope:   resolveScope(scope, callCtx),
		Kind:    kind,
		Summary: summary,
		Content: content,
		Tags:    stringSlice(params["tags"]),
	}
	if callCtx != nil {
		entry.Metadata = map[string]any{
			"job_id":   callCtx.JobID,
			"agent_id": callCtx.AgentID,
		}
	}

	id, err := t.store.Put(entry)
	if err != nil {
		return nil, fmt.Errorf("memory write failed: %w", err)
	}

	return map[string]any{
		"memory_id": id,
		"kind":      kind,
		"scope":     scope,
		"summary":   summary,
	}, nil
}

func intParam(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

func stringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

var (
	_ Tool = (*MemoryReadTool)(nil)
	_ Tool = (*MemoryWriteTool)(nil)
)
