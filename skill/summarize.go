package skill

import (
	"context"
	"fmt"
	"strings"
)

// SummarizeSkill produces a deterministic extractive summary by keeping the
// leading quarter of the input's sentences. It needs no model backend, which
// makes it cheap enough to run on every job.
type SummarizeSkill struct{}

// NewSummarizeSkill creates the builtin summarize skill.
func NewSummarizeSkill() *SummarizeSkill { return &SummarizeSkill{} }

// Info implements Skill.
func (s *SummarizeSkill) Info() Info {
	return Info{
		ID:          "summarize",
		Name:        "Summarize",
		Description: "Summarize long text into concise overviews",
		Version:     "1.0.0",
		Capability:  CapabilitySummarize,
		Builtin:     true,
		Active:      true,
	}
}

// Execute summarizes params["text"], truncating the result to
// params["max_length"] characters (default 200) on a word boundary.
func (s *SummarizeSkill) Execute(_ context.Context, params map[string]any, _ *Context) (map[string]any, error) {
	text, _ := params["text"].(string)
	if text == "" {
		return nil, fmt.Errorf("text is required for summarization")
	}

	maxLength := 200
	switch v := params["max_length"].(type) {
	case int:
		maxLength = v
	case float64:
		maxLength = int(v)
	}

	style, _ := params["style"].(string)
	if style == "" {
		style = "concise"
	}

	sentences := strings.Split(text, ". ")
	count := len(sentences) / 4
	if count < 1 {
		count = 1
	}
	summary := strings.Join(sentences[:count], ". ")

	if len(summary) > maxLength {
		cut := summary[:maxLength]
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		summary = cut + "..."
	}

	return map[string]any{
		"summary":         summary,
		"original_length": len(text),
		"summary_length":  len(summary),
		"style":           style,
	}, nil
}
