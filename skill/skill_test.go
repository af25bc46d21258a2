package skill

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentrun/memory"
)

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(NewSummarizeSkill()))

	err := reg.Register(NewSummarizeSkill())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSkill)
	assert.Contains(t, err.Error(), "summarize")
}

func TestRegistry_GetAndList(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(NewSummarizeSkill()))
	require.NoError(t, reg.Register(NewSearchSkill(memory.NewInMemoryStore())))

	assert.NotNil(t, reg.Get("summarize"))
	assert.Nil(t, reg.Get("missing"))

	all := reg.List("", true)
	assert.Len(t, all, 2)

	searchers := reg.List(CapabilitySearch, true)
	require.Len(t, searchers, 1)
	assert.Equal(t, "search", searchers[0].ID)
}

func TestRegistry_Deregister(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(NewSummarizeSkill()))

	assert.True(t, reg.Deregister("summarize"))
	assert.False(t, reg.Deregister("summarize"))
	assert.Nil(t, reg.Get("summarize"))
}

func TestSummarizeSkill_LeadingSentences(t *testing.T) {
	s := NewSummarizeSkill()

	text := "First point. Second point. Third point. Fourth point. " +
		"Fifth point. Sixth point. Seventh point. Eighth point."

	out, err := s.Execute(context.Background(), map[string]any{"text": text}, nil)
	require.NoError(t, err)

	// Eight sentences keep the first two.
	assert.Equal(t, "First point. Second point", out["summary"])
	assert.Equal(t, len(text), out["original_length"])
	assert.Equal(t, "concise", out["style"])
}

func TestSummarizeSkill_TruncatesOnWordBoundary(t *testing.T) {
	s := NewSummarizeSkill()

	out, err := s.Execute(context.Background(), map[string]any{
		"text":       "one two three four five six seven eight nine ten",
		"max_length": 20,
	}, nil)
	require.NoError(t, err)

	summary, ok := out["summary"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(summary, "..."))
	assert.LessOrEqual(t, len(summary), 23)
	// No mid-word cut before the ellipsis.
	assert.NotContains(t, summary, "thre...")
}

func TestSummarizeSkill_RequiresText(t *testing.T) {
	s := NewSummarizeSkill()

	_, err := s.Execute(context.Background(), map[string]any{}, nil)
	assert.Error(t, err)
}

func TestSearchSkill_VisibleScopes(t *testing.T) {
	store := memory.NewInMemoryStore()
	_, err := store.Put(memory.Entry{Scope: "global", Summary: "launch checklist", Kind: "knowledge"})
	require.NoError(t, err)
	_, err = store.Put(memory.Entry{Scope: "chat:c1", Summary: "launch on Friday", Kind: "decision"})
	require.NoError(t, err)
	_, err = store.Put(memory.Entry{Scope: "chat:other", Summary: "launch party", Kind: "knowledge"})
	require.NoError(t, err)

	s := NewSearchSkill(store)

	out, err := s.Execute(context.Background(), map[string]any{"query": "launch"}, &Context{ChatID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, 2, out["count"])
}

func TestSearchSkill_RequiresQuery(t *testing.T) {
	s := NewSearchSkill(memory.NewInMemoryStore())

	_, err := s.Execute(context.Background(), map[string]any{}, &Context{})
	assert.Error(t, err)
}
