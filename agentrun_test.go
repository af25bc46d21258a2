package agentrun

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentrun/agent"
	"github.com/hupe1980/agentrun/core"
	"github.com/hupe1980/agentrun/memory"
	"github.com/hupe1980/agentrun/model"
)

func TestNew_RegistersBuiltins(t *testing.T) {
	a := New(model.NewMockModel("test-model", "mock"))

	tools := a.Runtime().Tools()
	assert.NotNil(t, tools.Get("memory_read"))
	assert.NotNil(t, tools.Get("memory_write"))
	assert.NotNil(t, tools.Get("search"))

	skills := a.Runtime().Skills()
	assert.NotNil(t, skills.Get("summarize"))
	assert.NotNil(t, skills.Get("search"))
}

func TestNew_WithoutBuiltins(t *testing.T) {
	a := New(model.NewMockModel("test-model", "mock"), func(o *Options) {
		o.RegisterBuiltins = false
	})

	assert.Nil(t, a.Runtime().Tools().Get("memory_read"))
	assert.Empty(t, a.Runtime().Skills().List("", false))
}

func TestNew_UsesProvidedMemoryStore(t *testing.T) {
	store := memory.NewInMemoryStore()
	_, err := store.Put(memory.Entry{Scope: "global", Summary: "seeded", Kind: "knowledge"})
	require.NoError(t, err)

	a := New(model.NewMockModel("test-model", "mock"), func(o *Options) {
		o.MemoryStore = store
	})

	// The runtime and the builtin tools operate on the caller's store.
	assert.Same(t, store, a.Runtime().Memory())
	entries, err := a.Runtime().Memory().Search("global", "seeded", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSubmit_EndToEnd(t *testing.T) {
	m := model.NewMockModel("test-model", "mock")
	m.AddResponse("write the weekly summary", "All good\n- [ ] send it to the team")

	a := New(m)
	a.RegisterAgent(agent.New("writer", "Writer", "You write summaries."))

	job := core.NewJob(core.NewJobID(), "writer", "write the weekly summary")
	res := a.Submit(context.Background(), job)

	require.Equal(t, core.JobStatusCompleted, res.Status)
	assert.Contains(t, res.Response, "All good")
	require.Len(t, res.ActionItems, 1)
	assert.Equal(t, "send it to the team", res.ActionItems[0].Description)

	assert.False(t, a.Cancel(job.ID))
}

func TestNewModel_ProviderInference(t *testing.T) {
	m, err := NewModel("claude-3-5-sonnet-20241022", nil)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", m.Info().Provider)

	m, err = NewModel("gpt-4o-mini", nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", m.Info().Provider)

	_, err = NewModel("mystery-model", nil)
	assert.Error(t, err)
}
