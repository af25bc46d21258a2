package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopTool(id string, category Category, active bool) *FunctionTool {
	return NewFunctionTool(Definition{
		ID:          id,
		Category:    category,
		Description: "test tool",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		Active:      active,
	}, func(_ context.Context, _ map[string]any, _ *CallContext) (any, error) {
		return "ok", nil
	})
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(noopTool("a", CategoryFunction, true)))

	err := reg.Register(noopTool("a", CategoryFunction, true))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateTool)
	assert.Contains(t, err.Error(), "a")
}

func TestRegistry_GetAndDefinition(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(noopTool("a", CategoryFunction, true)))

	assert.NotNil(t, reg.Get("a"))
	assert.Nil(t, reg.Get("missing"))

	def, ok := reg.Definition("a")
	assert.True(t, ok)
	assert.Equal(t, "a", def.ID)

	_, ok = reg.Definition("missing")
	assert.False(t, ok)
}

func TestRegistry_DefinitionsSkipsMissing(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(noopTool("a", CategoryFunction, true)))
	require.NoError(t, reg.Register(noopTool("b", CategoryFunction, true)))

	defs := reg.Definitions([]string{"a", "ghost", "b"})
	require.Len(t, defs, 2)
	assert.Equal(t, "a", defs[0].ID)
	assert.Equal(t, "b", defs[1].ID)
}

func TestRegistry_ListFilters(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(noopTool("fn", CategoryFunction, true)))
	require.NoError(t, reg.Register(noopTool("mem", CategoryMemoryRead, true)))
	require.NoError(t, reg.Register(noopTool("off", CategoryFunction, false)))

	all := reg.List("", false)
	assert.Len(t, all, 3)

	active := reg.List("", true)
	assert.Len(t, active, 2)

	fns := reg.List(CategoryFunction, true)
	require.Len(t, fns, 1)
	assert.Equal(t, "fn", fns[0].ID)
}

func TestRegistry_ListOrderStable(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []string{"t07", "t03", "t11", "t00", "t09", "t05"} {
		require.NoError(t, reg.Register(noopTool(id, CategoryFunction, true)))
	}

	first := reg.List("", false)
	require.Len(t, first, 6)

	// Repeated calls on the same registry state return the same order.
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, reg.List("", false))
	}

	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].ID, first[i].ID)
	}
}

func TestRegistry_Deregister(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(noopTool("a", CategoryFunction, true)))

	assert.True(t, reg.Deregister("a"))
	assert.False(t, reg.Deregister("a"))
	assert.Nil(t, reg.Get("a"))
}
