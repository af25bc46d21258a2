package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.LLM.DefaultModel)
	assert.Equal(t, 60, cfg.Execution.JobTimeoutSeconds)
	assert.Equal(t, 60*time.Second, cfg.Execution.JobTimeout())
	assert.Equal(t, 10, cfg.Execution.MaxConcurrentJobs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AGENTRUN_LLM_DEFAULT_MODEL", "gpt-4o-mini")
	t.Setenv("AGENTRUN_LLM_OPENAI_API_KEY", "sk-test")
	t.Setenv("AGENTRUN_EXECUTION_JOB_TIMEOUT_SECONDS", "120")
	t.Setenv("AGENTRUN_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.LLM.DefaultModel)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, 120, cfg.Execution.JobTimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("llm:\n  default_model: custom-model\nexecution:\n  max_concurrent_jobs: 3\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "custom-model", cfg.LLM.DefaultModel)
	assert.Equal(t, 3, cfg.Execution.MaxConcurrentJobs)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60, cfg.Execution.JobTimeoutSeconds)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	// No API key configured.
	cfg.LLM.AnthropicAPIKey = ""
	cfg.LLM.OpenAIAPIKey = ""
	assert.Error(t, cfg.Validate())

	cfg.LLM.AnthropicAPIKey = "sk-ant-test"
	assert.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
	cfg.Logging.Level = "info"

	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
	cfg.Logging.Format = "text"

	cfg.Execution.JobTimeoutSeconds = 0
	assert.Error(t, cfg.Validate())
}
