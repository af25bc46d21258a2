package runtime

import (
	"strings"

	"github.com/hupe1980/agentrun/core"
)

// ExtractActionItems scans response text for checklist-style lines and turns
// them into action items. A trimmed line starting with "- [" or "* ["
// contributes the text after its first "]", itself trimmed, unless that text
// starts with another "[". Anything else is ignored; extraction never fails.
func ExtractActionItems(content string) []core.ActionItem {
	var items []core.ActionItem

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- [") && !strings.HasPrefix(line, "* [") {
			continue
		}

		_, rest, found := strings.Cut(line, "]")
		if !found {
			continue
		}
		desc := strings.TrimSpace(rest)
		if desc == "" || strings.HasPrefix(desc, "[") {
			continue
		}
		items = append(items, core.ActionItem{Description: desc})
	}

	return items
}
