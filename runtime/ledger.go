package runtime

import (
	"sync"
	"time"

	"github.com/hupe1980/agentrun/core"
)

// Ledger is the concurrency-safe bookkeeping of in-flight jobs and the
// substrate for cancellation. All mutations run under a single mutex so
// track, untrack, cancel and completion never interleave partially.
type Ledger struct {
	mu   sync.Mutex
	jobs map[string]*core.Job
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{jobs: make(map[string]*core.Job)}
}

// Track inserts the job under its id. An existing entry for the same id is
// overwritten, last writer wins; callers must keep job ids unique per
// submission.
func (l *Ledger) Track(job *core.Job) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jobs[job.ID] = job
}

// start transitions the job to RUNNING and stamps StartedAt. It runs under
// the same mutex Cancel and complete take, so status reads and writes on a
// tracked job are always serialized through the ledger.
func (l *Ledger) start(job *core.Job) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	job.Status = core.JobStatusRunning
	job.StartedAt = &now
}

// Untrack removes and discards the entry. No-op if absent.
func (l *Ledger) Untrack(jobID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.jobs, jobID)
}

// Cancel transitions a tracked RUNNING job to CANCELLED, stamps its
// completion time, removes it from the ledger and returns true. Any other
// state, including an unknown id or an already terminal job, returns false.
// The check and transition are one atomic section so a job can never be
// cancelled after it has already naturally completed.
func (l *Ledger) Cancel(jobID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs[jobID]
	if !ok || job.Status != core.JobStatusRunning {
		return false
	}

	now := time.Now().UTC()
	job.Status = core.JobStatusCancelled
	job.CompletedAt = &now
	delete(l.jobs, jobID)
	return true
}

// Active returns a snapshot of the jobs currently tracked.
func (l *Ledger) Active() []*core.Job {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*core.Job, 0, len(l.jobs))
	for _, job := range l.jobs {
		out = append(out, job)
	}
	return out
}

// complete finalizes a naturally finishing job under the same lock Cancel
// uses. If the job is still tracked and RUNNING it gets the given terminal
// status and a completion stamp, and complete reports true. If Cancel won the
// race the entry is gone and complete reports false; the job keeps its
// CANCELLED state untouched.
func (l *Ledger) complete(job *core.Job, status core.JobStatus) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	tracked, ok := l.jobs[job.ID]
	if !ok || tracked != job || tracked.Status != core.JobStatusRunning {
		return false
	}

	now := time.Now().UTC()
	job.Status = status
	job.CompletedAt = &now
	return true
}
