package tool

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/agentrun/logging"
)

// Call pairs a tool id with its parameter payload and the model-assigned call
// id, forming one element of a batch invocation.
type Call struct {
	CallID     string         `json:"call_id"`
	ToolID     string         `json:"tool_id"`
	Parameters map[string]any `json:"parameters"`
}

// EngineOptions holds configuration overrides passed to NewEngine.
type EngineOptions struct {
	// Logger for invocation telemetry. Defaults to NoOpLogger.
	Logger logging.Logger
	// MaxParallel bounds concurrent executions within one batch.
	// Zero or negative means no explicit limit.
	MaxParallel int
}

// Engine is the sole path through which a tool call reaches its
// implementation. It enforces the ordered policy chain (existence,
// authorization, rate limit, parameter validation) and guarantees every
// attempt yields a Result instead of an unhandled failure: dispatch errors
// and panics are caught at this boundary.
//
// The rate window is owned by, and private to, the Engine instance enforcing
// it. An Engine is safe for concurrent use.
type Engine struct {
	registry    *Registry
	window      *RateWindow
	logger      logging.Logger
	maxParallel int
}

// NewEngine constructs an Engine over the given registry.
func NewEngine(registry *Registry, optFns ...func(o *EngineOptions)) *Engine {
	opts := EngineOptions{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		registry:    registry,
		window:      NewRateWindow(),
		logger:      opts.Logger,
		maxParallel: opts.MaxParallel,
	}
}

// Registry returns the underlying tool registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Execute runs a single tool call through the policy chain. The checks
// short-circuit on first failure in a fixed order: existence, authorization,
// rate limit, parameter validation, dispatch.
func (e *Engine) Execute(ctx context.Context, toolID string, params map[string]any, callCtx *CallContext) Result {
	if callCtx == nil {
		callCtx = &CallContext{}
	}
	started := time.Now().UTC()

	impl := e.registry.Get(toolID)
	if impl == nil {
		return e.refuse(toolID, callCtx, started, StatusFailed, fmt.Sprintf("tool not found: %s", toolID))
	}
	def := impl.Definition()

	if def.RequiresAuth && callCtx.UserID == "" {
		return e.refuse(toolID, callCtx, started, StatusUnauthorized, "permission denied for tool execution")
	}

	if def.RateLimit > 0 && !e.window.Allow(toolID, def.RateLimit, def.RateWindow) {
		return e.refuse(toolID, callCtx, started, StatusFailed, "rate limit exceeded")
	}

	if err := impl.Validate(params); err != nil {
		return e.refuse(toolID, callCtx, started, StatusFailed, fmt.Sprintf("invalid parameters: %v", err))
	}

	output, err := e.dispatch(ctx, impl, params, callCtx)
	completed := time.Now().UTC()

	if err != nil {
		e.logger.Error("tool.call.error", "tool", toolID, "call_id", callCtx.CallID, "duration_ms", completed.Sub(started).Milliseconds(), "error", err.Error())
		return Result{
			ToolID:      toolID,
			CallID:      callCtx.CallID,
			Status:      StatusFailed,
			Error:       err.Error(),
			StartedAt:   started,
			CompletedAt: completed,
		}
	}

	e.logger.Info("tool.call.success", "tool", toolID, "call_id", callCtx.CallID, "duration_ms", completed.Sub(started).Milliseconds())

	return Result{
		ToolID:      toolID,
		CallID:      callCtx.CallID,
		Status:      StatusCompleted,
		Output:      output,
		StartedAt:   started,
		CompletedAt: completed,
	}
}

// ExecuteAll issues the calls as independent concurrent attempts sharing the
// base call context (each attempt gets its own call id) and returns results
// in input order. A failure or rate-limit denial in one attempt does not
// affect its siblings.
func (e *Engine) ExecuteAll(ctx context.Context, calls []Call, base CallContext) []Result {
	results := make([]Result, len(calls))
	if len(calls) == 0 {
		return results
	}

	var g errgroup.Group
	if e.maxParallel > 0 {
		g.SetLimit(e.maxParallel)
	}

	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			callCtx := base
			callCtx.CallID = call.CallID
			results[i] = e.Execute(ctx, call.ToolID, call.Parameters, &callCtx)
			return nil
		})
	}

	// Workers never return errors; Wait is only the join point.
	_ = g.Wait()

	return results
}

// dispatch invokes the tool, converting panics into errors so no fault from a
// tool implementation can cross the Engine boundary.
func (e *Engine) dispatch(ctx context.Context, impl Tool, params map[string]any, callCtx *CallContext) (output any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
			e.logger.Error("tool.dispatch.panic", "tool", impl.Definition().ID, "recover", r)
		}
	}()

	return impl.Execute(ctx, params, callCtx)
}

func (e *Engine) refuse(toolID string, callCtx *CallContext, started time.Time, status Status, msg string) Result {
	e.logger.Warn("tool.call.refused", "tool", toolID, "call_id", callCtx.CallID, "status", string(status), "reason", msg)
	now := time.Now().UTC()
	return Result{
		ToolID:      toolID,
		CallID:      callCtx.CallID,
		Status:      status,
		Error:       msg,
		StartedAt:   started,
		CompletedAt: now,
	}
}
