// Package config provides centralized configuration for the runtime, loaded
// from environment variables (prefix AGENTRUN_) or an optional config file
// via viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the runtime.
type Config struct {
	LLM       LLMConfig       `mapstructure:"llm"`
	Execution ExecutionConfig `mapstructure:"execution"`
	Logging   LoggingConfig   `mapstructure:"log"`
}

// LLMConfig holds text-generation provider configuration.
type LLMConfig struct {
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	DefaultModel    string `mapstructure:"default_model"`
}

// ExecutionConfig holds job execution settings. MaxConcurrentJobs is
// advisory; the runtime itself does not cap concurrency.
type ExecutionConfig struct {
	JobTimeoutSeconds int `mapstructure:"job_timeout_seconds"`
	MaxConcurrentJobs int `mapstructure:"max_concurrent_jobs"`
	MaxParallelTools  int `mapstructure:"max_parallel_tools"`
}

// JobTimeout returns the configured job timeout as a duration.
func (c ExecutionConfig) JobTimeout() time.Duration {
	return time.Duration(c.JobTimeoutSeconds) * time.Second
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, text
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("llm.default_model", "claude-3-5-sonnet-20241022")
	v.SetDefault("execution.job_timeout_seconds", 60)
	v.SetDefault("execution.max_concurrent_jobs", 10)
	v.SetDefault("execution.max_parallel_tools", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("AGENTRUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{"llm.anthropic_api_key", "llm.openai_api_key"} {
		_ = v.BindEnv(key)
	}

	return v
}

// Load loads configuration from environment variables over defaults.
func Load() (*Config, error) {
	return unmarshal(newViper())
}

// LoadFromFile loads configuration from a file (json, yaml or toml),
// with environment variables taking precedence.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

// MustLoad loads configuration or panics.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the runtime cannot start with.
func (c *Config) Validate() error {
	if c.LLM.AnthropicAPIKey == "" && c.LLM.OpenAIAPIKey == "" {
		return fmt.Errorf("at least one LLM API key (AGENTRUN_LLM_ANTHROPIC_API_KEY or AGENTRUN_LLM_OPENAI_API_KEY) is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be 'json' or 'text')", c.Logging.Format)
	}

	if c.Execution.JobTimeoutSeconds <= 0 {
		return fmt.Errorf("execution.job_timeout_seconds must be positive")
	}

	return nil
}
