package util

import "github.com/google/uuid"

// NewID returns a random identifier suitable for jobs, invocations and
// memory entries.
func NewID() string {
	return uuid.NewString()
}

// NewCallID returns an identifier for a single tool call. Kept separate from
// NewID so call ids can grow a prefix or different shape without touching
// job id generation.
func NewCallID() string {
	return "call_" + uuid.NewString()
}
