package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractActionItems_ChecklistLines(t *testing.T) {
	content := "Here is the plan:\n" +
		"- [ ] call Bob\n" +
		"some text\n" +
		"* [x] ship it\n"

	items := ExtractActionItems(content)
	require.Len(t, items, 2)
	assert.Equal(t, "call Bob", items[0].Description)
	assert.Equal(t, "ship it", items[1].Description)
}

func TestExtractActionItems_IndentedLines(t *testing.T) {
	items := ExtractActionItems("   - [ ] trimmed task   ")
	require.Len(t, items, 1)
	assert.Equal(t, "trimmed task", items[0].Description)
}

func TestExtractActionItems_SkipsMalformed(t *testing.T) {
	content := "- [ ] [tagged] not an item\n" + // rest starts with "["
		"- [no closing bracket\n" +
		"- [ ]\n" + // empty description
		"plain line\n" +
		"+ [ ] wrong bullet\n"

	assert.Empty(t, ExtractActionItems(content))
}

func TestExtractActionItems_EmptyInput(t *testing.T) {
	assert.Empty(t, ExtractActionItems(""))
}
