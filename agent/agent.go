// Package agent defines agent definitions and the registry the runtime
// resolves them from. An Agent is pure configuration: the system prompt and
// generation parameters a job runs with. Execution lives in the runtime
// package.
package agent

import "time"

// Config holds the generation parameters an agent's jobs run with.
type Config struct {
	// Model names the backend model, e.g. "claude-sonnet-4-5" or "gpt-4o-mini".
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout"`
}

// DefaultConfig returns the baseline generation parameters used when an agent
// does not override them.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.7,
		MaxTokens:   2000,
		Timeout:     30 * time.Second,
	}
}

// Agent is a registered agent definition.
type Agent struct {
	// ID uniquely identifies the agent within a registry.
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// SystemPrompt is placed first in every prompt built for this agent.
	SystemPrompt string `json:"system_prompt"`

	Config Config `json:"config"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// New constructs an active agent with default config.
func New(id, name, systemPrompt string) *Agent {
	return &Agent{
		ID:           id,
		Name:         name,
		SystemPrompt: systemPrompt,
		Config:       DefaultConfig(),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
}
