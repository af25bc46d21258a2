package core

import "time"

// ActionItem is a follow-up task extracted from an agent response.
type ActionItem struct {
	Description string         `json:"description"`
	Assignee    string         `json:"assignee,omitempty"`
	Priority    string         `json:"priority,omitempty"` // low, medium, high, urgent
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Result is the terminal outcome of a job. Exactly one Result is produced per
// Submit call; it is never mutated after creation. A FAILED result always
// carries a human-readable Error; a CANCELLED result never does.
type Result struct {
	JobID   string    `json:"job_id"`
	AgentID string    `json:"agent_id"`
	Status  JobStatus `json:"status"`

	// Response is the generated text, empty unless Status is COMPLETED.
	Response    string       `json:"response,omitempty"`
	ActionItems []ActionItem `json:"action_items,omitempty"`

	Error string `json:"error,omitempty"`

	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
