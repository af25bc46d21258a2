package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentrun/core"
)

func runningJob(id string) *core.Job {
	job := core.NewJob(id, "a1", "do something")
	job.Status = core.JobStatusRunning
	return job
}

func TestLedger_TrackUntrack(t *testing.T) {
	l := NewLedger()

	l.Track(runningJob("j1"))
	assert.Len(t, l.Active(), 1)

	l.Untrack("j1")
	assert.Empty(t, l.Active())

	// Untracking an absent id is a no-op.
	l.Untrack("ghost")
}

func TestLedger_TrackOverwrites(t *testing.T) {
	l := NewLedger()

	first := runningJob("j1")
	second := runningJob("j1")
	l.Track(first)
	l.Track(second)

	active := l.Active()
	require.Len(t, active, 1)
	assert.Same(t, second, active[0])
}

func TestLedger_StartStampsRunning(t *testing.T) {
	l := NewLedger()
	job := core.NewJob("j1", "a1", "queued")
	l.Track(job)

	l.start(job)

	assert.Equal(t, core.JobStatusRunning, job.Status)
	require.NotNil(t, job.StartedAt)

	// Once started, the job is cancellable.
	assert.True(t, l.Cancel("j1"))
}

func TestLedger_CancelRunningJob(t *testing.T) {
	l := NewLedger()
	job := runningJob("j1")
	l.Track(job)

	assert.True(t, l.Cancel("j1"))
	assert.Equal(t, core.JobStatusCancelled, job.Status)
	require.NotNil(t, job.CompletedAt)
	assert.Empty(t, l.Active())

	// A second cancel after the first success returns false.
	assert.False(t, l.Cancel("j1"))
}

func TestLedger_CancelUnknownOrNotRunning(t *testing.T) {
	l := NewLedger()

	assert.False(t, l.Cancel("ghost"))

	pending := core.NewJob("j1", "a1", "queued")
	l.Track(pending)
	assert.False(t, l.Cancel("j1"))
	assert.Equal(t, core.JobStatusPending, pending.Status)
}

func TestLedger_CompleteStampsTerminalStatus(t *testing.T) {
	l := NewLedger()
	job := runningJob("j1")
	l.Track(job)

	assert.True(t, l.complete(job, core.JobStatusCompleted))
	assert.Equal(t, core.JobStatusCompleted, job.Status)
	require.NotNil(t, job.CompletedAt)
}

func TestLedger_CompleteLosesToCancel(t *testing.T) {
	l := NewLedger()
	job := runningJob("j1")
	l.Track(job)

	require.True(t, l.Cancel("j1"))

	// Natural completion arriving after cancellation must not overwrite it.
	assert.False(t, l.complete(job, core.JobStatusCompleted))
	assert.Equal(t, core.JobStatusCancelled, job.Status)
}
