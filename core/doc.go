// Package core defines the shared domain types for the agent job runtime:
// jobs and their status state machine, execution context, and job results.
// It has no dependencies on the orchestration or tool packages so every other
// package can import it freely.
package core
