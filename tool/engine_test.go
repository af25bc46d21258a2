package tool

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, tools ...Tool) *Engine {
	t.Helper()
	reg := NewRegistry()
	for _, impl := range tools {
		require.NoError(t, reg.Register(impl))
	}
	return NewEngine(reg)
}

func TestEngine_Execute_Success(t *testing.T) {
	echo := NewFunctionTool(Definition{
		ID: "echo",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string"},
			},
			"required": []string{"text"},
		},
		Active: true,
	}, func(_ context.Context, params map[string]any, _ *CallContext) (any, error) {
		return params["text"], nil
	})

	e := newTestEngine(t, echo)

	res := e.Execute(context.Background(), "echo", map[string]any{"text": "hi"}, &CallContext{CallID: "c1", JobID: "j1"})
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, "hi", res.Output)
	assert.Equal(t, "c1", res.CallID)
	assert.Empty(t, res.Error)
	assert.False(t, res.StartedAt.After(res.CompletedAt))
}

func TestEngine_Execute_NotFound(t *testing.T) {
	e := newTestEngine(t)

	res := e.Execute(context.Background(), "ghost", nil, &CallContext{CallID: "c1"})
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Error, "not found")
	assert.Contains(t, res.Error, "ghost")
}

func TestEngine_Execute_DeregisteredToolNeverPanics(t *testing.T) {
	echo := noopTool("echo", CategoryFunction, true)
	e := newTestEngine(t, echo)

	require.True(t, e.Registry().Deregister("echo"))

	res := e.Execute(context.Background(), "echo", map[string]any{}, &CallContext{})
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Error, "not found")
}

func TestEngine_Execute_Unauthorized(t *testing.T) {
	secure := NewFunctionTool(Definition{
		ID:           "secure",
		RequiresAuth: true,
		InputSchema:  map[string]any{"type": "object", "properties": map[string]any{}},
		Active:       true,
	}, func(_ context.Context, _ map[string]any, _ *CallContext) (any, error) {
		return "secret", nil
	})

	e := newTestEngine(t, secure)

	// No caller identity.
	res := e.Execute(context.Background(), "secure", nil, &CallContext{CallID: "c1"})
	assert.Equal(t, StatusUnauthorized, res.Status)
	assert.NotEmpty(t, res.Error)

	// With a caller the same call succeeds.
	res = e.Execute(context.Background(), "secure", nil, &CallContext{CallID: "c2", UserID: "u1"})
	assert.Equal(t, StatusCompleted, res.Status)
}

func TestEngine_Execute_AuthCheckedBeforeRate(t *testing.T) {
	// A tool that both requires auth and has an exhausted rate limit must
	// report UNAUTHORIZED: the auth check runs before the rate check.
	secure := NewFunctionTool(Definition{
		ID:           "secure_limited",
		RequiresAuth: true,
		RateLimit:    1,
		RateWindow:   time.Minute,
		InputSchema:  map[string]any{"type": "object", "properties": map[string]any{}},
		Active:       true,
	}, func(_ context.Context, _ map[string]any, _ *CallContext) (any, error) {
		return "ok", nil
	})

	e := newTestEngine(t, secure)

	// Exhaust the limit with an authenticated call.
	res := e.Execute(context.Background(), "secure_limited", nil, &CallContext{UserID: "u1"})
	require.Equal(t, StatusCompleted, res.Status)

	// Authenticated caller now hits the rate limit...
	res = e.Execute(context.Background(), "secure_limited", nil, &CallContext{UserID: "u1"})
	require.Equal(t, StatusFailed, res.Status)
	require.Contains(t, res.Error, "rate limit")

	// ...but an unauthenticated caller is refused for auth, not rate.
	res = e.Execute(context.Background(), "secure_limited", nil, &CallContext{})
	assert.Equal(t, StatusUnauthorized, res.Status)
}

func TestEngine_Execute_RateLimit(t *testing.T) {
	limited := NewFunctionTool(Definition{
		ID:          "limited",
		RateLimit:   2,
		RateWindow:  time.Minute,
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		Active:      true,
	}, func(_ context.Context, _ map[string]any, _ *CallContext) (any, error) {
		return "ok", nil
	})

	e := newTestEngine(t, limited)

	assert.Equal(t, StatusCompleted, e.Execute(context.Background(), "limited", nil, nil).Status)
	assert.Equal(t, StatusCompleted, e.Execute(context.Background(), "limited", nil, nil).Status)

	res := e.Execute(context.Background(), "limited", nil, nil)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "rate limit exceeded", res.Error)
}

func TestEngine_Execute_InvalidParameters(t *testing.T) {
	var executed bool
	strict := NewFunctionTool(Definition{
		ID: "strict",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"n": map[string]any{"type": "integer"},
			},
			"required": []string{"n"},
		},
		Active: true,
	}, func(_ context.Context, _ map[string]any, _ *CallContext) (any, error) {
		executed = true
		return "ok", nil
	})

	e := newTestEngine(t, strict)

	res := e.Execute(context.Background(), "strict", map[string]any{}, &CallContext{})
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Error, "invalid parameters")
	// Validation must not trigger the tool's side effects.
	assert.False(t, executed)
}

func TestEngine_Execute_DispatchErrorContained(t *testing.T) {
	boom := NewFunctionTool(Definition{
		ID:          "boom",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		Active:      true,
	}, func(_ context.Context, _ map[string]any, _ *CallContext) (any, error) {
		return nil, errors.New("backend exploded")
	})

	e := newTestEngine(t, boom)

	res := e.Execute(context.Background(), "boom", nil, &CallContext{})
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Error, "backend exploded")
}

// panicTool bypasses FunctionTool's error wrapping to exercise the Engine's
// panic containment directly.
type panicTool struct{}

func (panicTool) Definition() Definition {
	return Definition{ID: "panics", InputSchema: map[string]any{"type": "object", "properties": map[string]any{}}, Active: true}
}
func (panicTool) Validate(map[string]any) error { return nil }
func (panicTool) Execute(context.Context, map[string]any, *CallContext) (any, error) {
	panic("tool went off the rails")
}

func TestEngine_Execute_PanicContained(t *testing.T) {
	e := newTestEngine(t, panicTool{})

	res := e.Execute(context.Background(), "panics", nil, &CallContext{})
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Error, "panic")
}

func TestEngine_ExecuteAll_OrderAndIndependence(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}

	record := func(id string) *FunctionTool {
		return NewFunctionTool(Definition{
			ID:          id,
			InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
			Active:      true,
		}, func(_ context.Context, _ map[string]any, _ *CallContext) (any, error) {
			mu.Lock()
			seen[id] = true
			mu.Unlock()
			return id, nil
		})
	}

	e := newTestEngine(t, record("alpha"), record("beta"))

	calls := []Call{
		{CallID: "c1", ToolID: "alpha"},
		{CallID: "c2", ToolID: "ghost"}, // fails, must not affect siblings
		{CallID: "c3", ToolID: "beta"},
	}

	results := e.ExecuteAll(context.Background(), calls, CallContext{JobID: "j1", AgentID: "a1"})
	require.Len(t, results, 3)

	// Results come back in input order, not completion order.
	assert.Equal(t, "c1", results[0].CallID)
	assert.Equal(t, "c2", results[1].CallID)
	assert.Equal(t, "c3", results[2].CallID)

	assert.Equal(t, StatusCompleted, results[0].Status)
	assert.Equal(t, StatusFailed, results[1].Status)
	assert.Equal(t, StatusCompleted, results[2].Status)

	assert.True(t, seen["alpha"])
	assert.True(t, seen["beta"])
}

func TestEngine_ExecuteAll_Empty(t *testing.T) {
	e := newTestEngine(t)
	assert.Empty(t, e.ExecuteAll(context.Background(), nil, CallContext{}))
}
