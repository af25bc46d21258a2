// Package runtime owns the end-to-end lifecycle of agent jobs: prompt
// building, the bounded backend call, tool fan-out through the gate, action
// item extraction and cancellation bookkeeping. Every failure mode is
// contained into the returned Result; Submit never raises.
package runtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentrun/agent"
	"github.com/hupe1980/agentrun/core"
	"github.com/hupe1980/agentrun/internal/util"
	"github.com/hupe1980/agentrun/logging"
	"github.com/hupe1980/agentrun/memory"
	"github.com/hupe1980/agentrun/model"
	"github.com/hupe1980/agentrun/skill"
	"github.com/hupe1980/agentrun/tool"
)

// Options configures a Runtime. All registries default to fresh empty ones
// and the store to an in-memory implementation, so a bare NewRuntime(model)
// is fully usable.
type Options struct {
	Logger        logging.Logger
	AgentRegistry *agent.Registry
	ToolRegistry  *tool.Registry
	SkillRegistry *skill.Registry
	MemoryStore   memory.Store

	// MaxParallelTools caps concurrent tool dispatches per batch.
	// Zero means unlimited.
	MaxParallelTools int
}

// Runtime executes agent jobs against a text-generation backend.
type Runtime struct {
	model  model.Model
	agents *agent.Registry
	engine *tool.Engine
	skills *skill.Registry
	store  memory.Store
	logger logging.Logger
	ledger *Ledger
}

// NewRuntime creates a runtime around the given model backend.
func NewRuntime(m model.Model, optFns ...func(o *Options)) *Runtime {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.AgentRegistry == nil {
		opts.AgentRegistry = agent.NewRegistry()
	}
	if opts.ToolRegistry == nil {
		opts.ToolRegistry = tool.NewRegistry()
	}
	if opts.SkillRegistry == nil {
		opts.SkillRegistry = skill.NewRegistry()
	}
	if opts.MemoryStore == nil {
		opts.MemoryStore = memory.NewInMemoryStore()
	}

	engine := tool.NewEngine(opts.ToolRegistry, func(o *tool.EngineOptions) {
		o.Logger = opts.Logger
		o.MaxParallel = opts.MaxParallelTools
	})

	return &Runtime{
		model:  m,
		agents: opts.AgentRegistry,
		engine: engine,
		skills: opts.SkillRegistry,
		store:  opts.MemoryStore,
		logger: opts.Logger,
		ledger: NewLedger(),
	}
}

// Agents returns the agent registry.
func (r *Runtime) Agents() *agent.Registry { return r.agents }

// Tools returns the tool registry behind the invocation gate.
func (r *Runtime) Tools() *tool.Registry { return r.engine.Registry() }

// Engine returns the tool invocation gate.
func (r *Runtime) Engine() *tool.Engine { return r.engine }

// Skills returns the skill registry.
func (r *Runtime) Skills() *skill.Registry { return r.skills }

// Memory returns the memory store.
func (r *Runtime) Memory() memory.Store { return r.store }

// ActiveJobs returns a snapshot of the jobs currently in flight.
func (r *Runtime) ActiveJobs() []*core.Job { return r.ledger.Active() }

// Submit executes the job to a terminal outcome. Errors from the backend,
// the gate or the job's timeout are contained in the Result; the returned
// value is never nil and Submit never panics on well-formed input.
func (r *Runtime) Submit(ctx context.Context, job *core.Job) *core.Result {
	ag := r.agents.Get(job.AgentID)
	if ag == nil {
		// Never enters the ledger: no execution begins.
		return &core.Result{
			JobID:   job.ID,
			AgentID: job.AgentID,
			Status:  core.JobStatusFailed,
			Error:   fmt.Sprintf("agent not found: %s", job.AgentID),
		}
	}

	r.ledger.Track(job)
	defer r.ledger.Untrack(job.ID)
	r.ledger.start(job)

	r.logger.Info("job.started", "job_id", job.ID, "agent_id", job.AgentID)

	resp, err := r.generate(ctx, ag, job)
	if err != nil {
		return r.finish(job, &core.Result{
			JobID:     job.ID,
			AgentID:   job.AgentID,
			Status:    core.JobStatusFailed,
			Error:     err.Error(),
			StartedAt: job.StartedAt,
		}, core.JobStatusFailed)
	}

	if len(resp.ToolCalls) > 0 {
		r.runToolCalls(ctx, job, resp.ToolCalls)
	}

	return r.finish(job, &core.Result{
		JobID:        job.ID,
		AgentID:      job.AgentID,
		Status:       core.JobStatusCompleted,
		Response:     resp.Text,
		ActionItems:  ExtractActionItems(resp.Text),
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		StartedAt:    job.StartedAt,
	}, core.JobStatusCompleted)
}

// Cancel cancels an in-flight job. It returns true exactly once per job, and
// only while the job is tracked and RUNNING.
func (r *Runtime) Cancel(jobID string) bool {
	cancelled := r.ledger.Cancel(jobID)
	if cancelled {
		r.logger.Info("job.cancelled", "job_id", jobID)
	}
	return cancelled
}

// generate builds the prompt and performs the bounded backend call.
func (r *Runtime) generate(ctx context.Context, ag *agent.Agent, job *core.Job) (*model.Response, error) {
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	req := model.Request{
		Messages:    buildMessages(ag, job),
		Tools:       r.toolDefinitions(job.ToolsAllowed),
		Temperature: ag.Config.Temperature,
		MaxTokens:   ag.Config.MaxTokens,
	}

	began := time.Now()
	resp, err := r.model.Chat(ctx, req)
	if err != nil {
		r.logger.Error("model.call.error",
			"job_id", job.ID,
			"model", r.model.Info().Name,
			"duration_ms", time.Since(began).Milliseconds(),
			"error", err.Error(),
		)
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("timeout after %s: %w", job.Timeout, err)
		}
		return nil, err
	}

	r.logger.Debug("model.call.success",
		"job_id", job.ID,
		"model", r.model.Info().Name,
		"duration_ms", time.Since(began).Milliseconds(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)
	return resp, nil
}

// runToolCalls routes requested tool calls through the gate. Outcomes are
// collected and logged; continuing the conversation with them is out of
// scope here.
func (r *Runtime) runToolCalls(ctx context.Context, job *core.Job, toolCalls []model.ToolCall) []tool.Result {
	calls := make([]tool.Call, len(toolCalls))
	for i, tc := range toolCalls {
		callID := tc.ID
		if callID == "" {
			callID = util.NewCallID()
		}
		calls[i] = tool.Call{
			CallID:     callID,
			ToolID:     tc.Name,
			Parameters: tc.Parameters,
		}
	}

	results := r.engine.ExecuteAll(ctx, calls, tool.CallContext{
		JobID:   job.ID,
		AgentID: job.AgentID,
		ChatID:  job.Context.ChatID,
		UserID:  job.Context.SenderID,
	})

	for _, res := range results {
		if res.Status != tool.StatusCompleted {
			r.logger.Warn("job.tool.failed",
				"job_id", job.ID,
				"tool_id", res.ToolID,
				"status", string(res.Status),
				"error", res.Error,
			)
		}
	}
	return results
}

// toolDefinitions resolves allowed tool ids to backend descriptors, skipping
// ids that no longer resolve.
func (r *Runtime) toolDefinitions(ids []string) []model.ToolDefinition {
	defs := r.engine.Registry().Definitions(ids)
	if len(defs) == 0 {
		return nil
	}

	out := make([]model.ToolDefinition, len(defs))
	for i, def := range defs {
		name := def.Name
		if name == "" {
			name = def.ID
		}
		out[i] = model.ToolDefinition{
			Name:        name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}
	}
	return out
}

// finish settles the job against the ledger. If cancellation won the race
// while the backend call was in flight the natural outcome is discarded and
// a CANCELLED result, carrying no error, is returned instead.
func (r *Runtime) finish(job *core.Job, result *core.Result, status core.JobStatus) *core.Result {
	if !r.ledger.complete(job, status) {
		r.logger.Info("job.finished", "job_id", job.ID, "status", string(core.JobStatusCancelled))
		return &core.Result{
			JobID:       job.ID,
			AgentID:     job.AgentID,
			Status:      core.JobStatusCancelled,
			StartedAt:   job.StartedAt,
			CompletedAt: job.CompletedAt,
		}
	}

	result.CompletedAt = job.CompletedAt
	r.logger.Info("job.finished", "job_id", job.ID, "status", string(result.Status))
	return result
}

// buildMessages renders the prompt in fixed order: the agent's system
// instruction, a rendering of recent context messages, then the job's
// instruction.
func buildMessages(ag *agent.Agent, job *core.Job) []model.Message {
	messages := []model.Message{
		{Role: model.RoleSystem, Content: ag.SystemPrompt},
	}

	if len(job.Context.RecentMessages) > 0 {
		var sb strings.Builder
		sb.WriteString("Recent conversation:\n")
		for i, msg := range job.Context.RecentMessages {
			if i > 0 {
				sb.WriteString("\n")
			}
			role := msg.Role
			if role == "" {
				role = "user"
			}
			sb.WriteString(role + ": " + msg.Content)
		}
		messages = append(messages, model.Message{Role: model.RoleUser, Content: sb.String()})
	}

	return append(messages, model.Message{Role: model.RoleUser, Content: job.Instruction})
}
