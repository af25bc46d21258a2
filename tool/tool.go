// Package tool implements the tool calling subsystem that lets agents invoke
// structured capabilities (APIs, computations, side-effects) with schema
// validated arguments and consistent error handling. Every invocation is
// mediated by the Engine, which enforces existence, authorization, rate limit
// and parameter checks before a tool runs and converts every failure into a
// Result value.
package tool

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateTool is returned by Registry.Register when a tool with the same
// id is already present.
var ErrDuplicateTool = errors.New("tool already registered")

// Category groups tools for listing and policy purposes.
type Category string

// Built-in tool categories.
const (
	CategoryMemoryRead  Category = "memory_read"
	CategoryMemoryWrite Category = "memory_write"
	CategorySearch      Category = "search"
	CategoryWeb         Category = "web"
	CategoryCode        Category = "code"
	CategoryFile        Category = "file"
	CategoryFunction    Category = "function"
)

// Definition declaratively describes a registered tool. Definitions are
// immutable once registered.
type Definition struct {
	// ID uniquely identifies the tool within a registry.
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`

	// InputSchema is a minimal JSON-Schema-like contract for parameters.
	InputSchema map[string]any `json:"input_schema"`

	// RequiresAuth demands an authenticated caller (CallContext.UserID).
	RequiresAuth bool `json:"requires_auth"`

	// RateLimit caps calls per RateWindow. Zero means unlimited.
	RateLimit  int           `json:"rate_limit,omitempty"`
	RateWindow time.Duration `json:"rate_window,omitempty"`

	Active bool `json:"active"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// CallContext identifies the origin of a tool invocation: which job and agent
// requested it, on whose behalf, and the model-assigned call id.
type CallContext struct {
	CallID  string `json:"call_id"`
	JobID   string `json:"job_id,omitempty"`
	AgentID string `json:"agent_id,omitempty"`
	ChatID  string `json:"chat_id,omitempty"`
	// UserID is the authenticated caller. Tools with RequiresAuth refuse
	// invocations without one.
	UserID string `json:"user_id,omitempty"`
}

// Tool is the interface every registered capability implements. The Engine
// never inspects how a tool does its work; it only relies on Validate being
// side-effect free and Execute honoring the provided context.
type Tool interface {
	// Definition returns the tool's immutable descriptor.
	Definition() Definition

	// Validate structurally checks the parameter payload against the tool's
	// declared schema. It must not trigger any of the tool's side effects.
	Validate(params map[string]any) error

	// Execute runs the tool. Implementations should respect ctx cancellation
	// for long-running work. Returned errors are contained by the Engine and
	// surfaced as failed Results, never propagated to its caller.
	Execute(ctx context.Context, params map[string]any, callCtx *CallContext) (any, error)
}

// Status is the terminal status of a single invocation attempt.
type Status string

const (
	// StatusCompleted marks a successful invocation.
	StatusCompleted Status = "completed"
	// StatusFailed marks an invocation refused by a policy check or failed
	// during dispatch.
	StatusFailed Status = "failed"
	// StatusUnauthorized marks an invocation refused for missing caller
	// identity on an auth-requiring tool.
	StatusUnauthorized Status = "unauthorized"
)

// Result is the outcome of one invocation attempt. Produced exactly once per
// attempt and never mutated afterwards.
type Result struct {
	ToolID string `json:"tool_id"`
	CallID string `json:"call_id"`
	Status Status `json:"status"`

	// Output is the tool's opaque result payload on success.
	Output any `json:"output,omitempty"`
	// Error is a human-readable description when Status is not completed.
	Error string `json:"error,omitempty"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// ToolError represents errors raised by tool implementations with a stable
// code for categorization.
type ToolError struct {
	Tool    string `json:"tool"`              // Id of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
