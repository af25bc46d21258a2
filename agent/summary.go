package agent

import (
	"time"

	"github.com/hupe1980/agentrun/core"
	"github.com/hupe1980/agentrun/internal/util"
)

// SummaryAgentID is the id of the built-in summary agent.
const SummaryAgentID = "summary_agent"

const summarySystemPrompt = `You are SummaryAgent, an AI assistant specialized in summarizing conversations and content.

Your capabilities:
- Summarize chat conversations and discussions
- Extract key points and decisions
- Identify action items and tasks
- Organize information clearly

When summarizing:
1. Start with a brief overview (2-3 sentences)
2. List key discussion points
3. Extract action items with assignees if mentioned
4. Note any decisions made

Format your response clearly with sections.`

// NewSummaryAgent returns the built-in conversation summarizer definition.
func NewSummaryAgent(model string) *Agent {
	a := New(SummaryAgentID, "SummaryAgent", summarySystemPrompt)
	a.Description = "Summarizes conversations, meetings, and content"
	a.Config.Model = model
	a.Config.Temperature = 0.3
	a.Config.MaxTokens = 1500
	return a
}

// NewSummaryJob builds a job targeting the summary agent with the standard
// tool allowance (memory read/write) and a generated job id.
func NewSummaryJob(chatID, senderID, instruction string, recent []core.ContextMessage) *core.Job {
	job := core.NewJob(util.NewID(), SummaryAgentID, instruction)
	job.Context = core.ExecutionContext{
		ChatID:         chatID,
		SenderID:       senderID,
		RecentMessages: recent,
	}
	job.ToolsAllowed = []string{"memory_read", "memory_write"}
	job.Timeout = 30 * time.Second
	return job
}
