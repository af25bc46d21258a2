package core

import (
	"time"

	"github.com/hupe1980/agentrun/internal/util"
)

// JobStatus tracks a job through its lifecycle.
// Valid transitions: PENDING -> RUNNING -> {COMPLETED, FAILED, CANCELLED}.
// The three terminal statuses are mutually exclusive and final.
type JobStatus string

const (
	// JobStatusPending marks a job that has been created but not started.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning marks a job currently executing.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted marks a job that finished successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed marks a job that finished with an error.
	JobStatusFailed JobStatus = "failed"
	// JobStatusCancelled marks a job that was cancelled while running.
	JobStatusCancelled JobStatus = "cancelled"
)

// IsTerminal reports whether the status is final.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

// ContextMessage is a single role-tagged message from the conversation the
// job was spawned from.
type ContextMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExecutionContext carries the conversational surroundings of a job: where it
// came from and what was recently said. All fields are optional; an empty
// context is valid for standalone jobs.
type ExecutionContext struct {
	ChatID   string `json:"chat_id,omitempty"`
	ThreadID string `json:"thread_id,omitempty"`
	SenderID string `json:"sender_id,omitempty"`

	// RecentMessages is a snapshot of the conversation rendered into the
	// prompt ahead of the job instruction.
	RecentMessages []ContextMessage `json:"recent_messages,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// Job is one request to an agent to perform an instruction, tracked from
// submission to terminal outcome. Jobs are created by the caller and mutated
// only by the runtime (status, timestamps) and by cancellation.
type Job struct {
	// ID uniquely identifies the job. Callers must ensure uniqueness per
	// submission; the ledger overwrites on collision.
	ID      string `json:"id"`
	AgentID string `json:"agent_id"`

	// Instruction is the free-text task for the agent.
	Instruction string           `json:"instruction"`
	Context     ExecutionContext `json:"context"`

	// ToolsAllowed lists the tool ids this job may invoke. Ids that no
	// longer resolve in the catalogue are skipped silently.
	ToolsAllowed []string `json:"tools_allowed,omitempty"`

	// Timeout bounds the backend call. Zero means no bound beyond the
	// caller's context.
	Timeout time.Duration `json:"timeout,omitempty"`

	// Retry budget. Not auto-driven by the runtime; the submission layer
	// owns retry policy.
	MaxRetries int `json:"max_retries,omitempty"`
	RetryCount int `json:"retry_count,omitempty"`

	Status JobStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewJobID returns a fresh unique job identifier.
func NewJobID() string {
	return util.NewID()
}

// NewJob constructs a pending job with the creation timestamp set.
func NewJob(id, agentID, instruction string) *Job {
	return &Job{
		ID:          id,
		AgentID:     agentID,
		Instruction: instruction,
		Status:      JobStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}
