// Package agentrun provides a high-level façade over the job runtime and its
// service abstractions (agents, tools, skills, memory & logging) enabling
// rapid construction of agent-driven job pipelines. Most applications
// interact with this package by:
//  1. Creating an AgentRun via New() with a model backend (optionally
//     overriding default in-memory services)
//  2. Registering one or more agents and the tools their jobs may use
//  3. Submitting jobs (Submit) and, when needed, cancelling them (Cancel)
//
// The façade delegates orchestration to runtime.Runtime while keeping setup
// and usage ergonomics concise. All defaults are safe for local development
// and testing; production deployments typically supply a durable memory
// store and a structured logger.
package agentrun

import (
	"context"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/hupe1980/agentrun/agent"
	"github.com/hupe1980/agentrun/config"
	"github.com/hupe1980/agentrun/core"
	"github.com/hupe1980/agentrun/logging"
	"github.com/hupe1980/agentrun/memory"
	"github.com/hupe1980/agentrun/model"
	"github.com/hupe1980/agentrun/model/anthropic"
	"github.com/hupe1980/agentrun/model/openai"
	"github.com/hupe1980/agentrun/runtime"
	"github.com/hupe1980/agentrun/skill"
	"github.com/hupe1980/agentrun/tool"
)

// Options configures the AgentRun instance.
type Options struct {
	// Stores and registries (default to in-memory implementations if not provided)
	AgentRegistry *agent.Registry
	ToolRegistry  *tool.Registry
	SkillRegistry *skill.Registry
	MemoryStore   memory.Store

	// MaxParallelTools caps concurrent tool dispatches within one job's
	// batch. Zero means unlimited.
	MaxParallelTools int

	// RegisterBuiltins installs the builtin memory, search and skill
	// implementations on construction. Enabled by default.
	RegisterBuiltins bool

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentRun is the high-level façade aggregating the runtime and its services.
type AgentRun struct {
	opts    Options
	runtime *runtime.Runtime
}

// New creates a new AgentRun instance around the given model backend. Any
// unset service is initialized with an in-memory implementation.
func New(m model.Model, optFns ...func(o *Options)) *AgentRun {
	// Nil registries and store fall through to the runtime's own in-memory
	// defaults.
	opts := Options{
		Logger:           logging.NoOpLogger{},
		RegisterBuiltins: true,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	r := runtime.NewRuntime(m, func(o *runtime.Options) {
		o.Logger = opts.Logger
		o.AgentRegistry = opts.AgentRegistry
		o.ToolRegistry = opts.ToolRegistry
		o.SkillRegistry = opts.SkillRegistry
		o.MemoryStore = opts.MemoryStore
		o.MaxParallelTools = opts.MaxParallelTools
	})

	a := &AgentRun{opts: opts, runtime: r}

	if opts.RegisterBuiltins {
		store := r.Memory()
		_ = r.Tools().Register(tool.NewMemoryReadTool(store))
		_ = r.Tools().Register(tool.NewMemoryWriteTool(store))
		_ = r.Tools().Register(tool.NewSearchTool(store))
		_ = r.Skills().Register(skill.NewSummarizeSkill())
		_ = r.Skills().Register(skill.NewSearchSkill(store))
	}

	return a
}

// NewFromConfig creates an AgentRun using the configured default model and
// provider credentials.
func NewFromConfig(cfg *config.Config, optFns ...func(o *Options)) (*AgentRun, error) {
	m, err := NewModel(cfg.LLM.DefaultModel, cfg)
	if err != nil {
		return nil, err
	}

	optFns = append(optFns, func(o *Options) {
		o.MaxParallelTools = cfg.Execution.MaxParallelTools
	})

	return New(m, optFns...), nil
}

// NewModel constructs a provider adapter for the given model name. The
// provider is inferred from the name: "claude*" maps to Anthropic, "gpt*"
// and "o*" reasoning models to OpenAI.
func NewModel(name string, cfg *config.Config) (model.Model, error) {
	switch {
	case strings.HasPrefix(name, "claude"):
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropicsdk.Model(name)
			if cfg != nil {
				o.APIKey = cfg.LLM.AnthropicAPIKey
			}
		}), nil
	case strings.HasPrefix(name, "gpt"), strings.HasPrefix(name, "o1"), strings.HasPrefix(name, "o3"):
		return openai.NewModel(func(o *openai.Options) {
			o.Model = name
			if cfg != nil {
				o.APIKey = cfg.LLM.OpenAIAPIKey
			}
		}), nil
	default:
		return nil, fmt.Errorf("cannot infer provider for model: %s", name)
	}
}

// Runtime exposes the underlying runtime for advanced wiring.
func (a *AgentRun) Runtime() *runtime.Runtime { return a.runtime }

// RegisterAgent adds an agent definition to the registry.
func (a *AgentRun) RegisterAgent(ag *agent.Agent) { a.runtime.Agents().Register(ag) }

// RegisterTool adds a tool behind the invocation gate.
func (a *AgentRun) RegisterTool(t tool.Tool) error { return a.runtime.Tools().Register(t) }

// Submit executes a job to completion and returns its outcome. Failures are
// contained in the result; Submit never returns an error.
func (a *AgentRun) Submit(ctx context.Context, job *core.Job) *core.Result {
	return a.runtime.Submit(ctx, job)
}

// Cancel cancels an in-flight job, reporting whether it was running.
func (a *AgentRun) Cancel(jobID string) bool { return a.runtime.Cancel(jobID) }
