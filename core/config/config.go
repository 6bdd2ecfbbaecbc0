// Package config resolves the process configuration into one immutable
// Config value at startup. Core packages never read the environment
// themselves; the Config is passed explicitly into every agent and batch
// dispatcher, by value, so no shared mutable configuration exists at
// runtime.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingCredential reports that the credential required by the selected
// provider is absent. It is fatal: agents for that provider cannot be
// constructed.
var ErrMissingCredential = errors.New("parley: missing provider credential")

// ErrInvalidConfig reports a configuration file that could not be read or
// parsed. Fatal at startup.
var ErrInvalidConfig = errors.New("parley: invalid configuration")

// ProviderKind selects one of the four provider variants.
type ProviderKind string

const (
	ProviderOpenAI    ProviderKind = "openai"
	ProviderAnthropic ProviderKind = "claude"
	ProviderOllama    ProviderKind = "ollama"
	ProviderGoogle    ProviderKind = "google"
)

// Defaults applied when the environment or config file leaves a value unset.
const (
	DefaultMaxTokens         = 1024
	DefaultTemperature       = 0.7
	DefaultRetryCount        = 3
	DefaultBackoffBase       = 500 * time.Millisecond
	DefaultMaxToolIterations = 3

	// DefaultSystemPrompt opens every conversation.
	DefaultSystemPrompt = "You are Parley, a versatile coding assistant with tools for file I/O, " +
		"directory operations, shell commands, HTTP fetches, and code evaluation. " +
		"Use the available tools when they help. Respond concisely."
)

// Config is the immutable configuration snapshot shared by every agent.
// It is always passed by value; per-batch variation happens by constructing
// new agents from the same Config, never by mutating it.
type Config struct {
	Provider    ProviderKind `yaml:"provider"`
	Model       string       `yaml:"model"`
	MaxTokens   int          `yaml:"max_tokens"`
	Temperature float32      `yaml:"temperature"`

	RetryCount    int           `yaml:"retry_count"`
	BackoffBase   time.Duration `yaml:"backoff_base"`
	MaxConcurrent int           `yaml:"max_concurrent"` // 0 = unbounded batch fan-out

	MaxToolIterations int    `yaml:"max_tool_iterations"`
	SystemPrompt      string `yaml:"system_prompt"`

	APIKey       string `yaml:"api_key"`        // bearer credential (openai, claude)
	GoogleAPIKey string `yaml:"google_api_key"` // query-string credential (google)
	BaseURL      string `yaml:"base_url"`       // optional endpoint override for the selected provider
}

// Load builds a Config from the process environment. A .env file in the
// working directory is folded in first when present. Missing values take
// the package defaults; credential validation happens in Validate.
func Load() Config {
	_ = godotenv.Load() // absent .env is fine

	cfg := Config{
		Provider:          ProviderKind(envOr("API_PROVIDER", string(ProviderOpenAI))),
		Model:             os.Getenv("MODEL_NAME"),
		MaxTokens:         envIntOr("MAX_TOKENS", DefaultMaxTokens),
		Temperature:       envFloatOr("TEMPERATURE", DefaultTemperature),
		RetryCount:        envIntOr("RETRY_COUNT", DefaultRetryCount),
		BackoffBase:       time.Duration(envIntOr("BACKOFF_BASE_MS", int(DefaultBackoffBase/time.Millisecond))) * time.Millisecond,
		MaxConcurrent:     envIntOr("MAX_CONCURRENT", 0),
		MaxToolIterations: envIntOr("MAX_TOOL_ITERATIONS", DefaultMaxToolIterations),
		SystemPrompt:      envOr("SYSTEM_PROMPT", DefaultSystemPrompt),
		APIKey:            os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		BaseURL:           os.Getenv("API_BASE_URL"),
	}

	return cfg
}

// LoadFile builds a Config from a YAML file, applying the same defaults as
// Load for unset values.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: reading %s: %w", ErrInvalidConfig, path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parsing %s: %w", ErrInvalidConfig, path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.RetryCount <= 0 {
		c.RetryCount = DefaultRetryCount
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = DefaultBackoffBase
	}
	if c.MaxToolIterations <= 0 {
		c.MaxToolIterations = DefaultMaxToolIterations
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
}

// Validate checks that the credential required by the selected provider is
// present. The local daemon needs none. Unknown provider kinds follow the
// completions-style fallback and therefore need its credential.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOllama:
		return nil
	case ProviderGoogle:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("%w: GOOGLE_API_KEY is required for provider %q", ErrMissingCredential, c.Provider)
		}
		return nil
	default:
		if c.APIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required for provider %q", ErrMissingCredential, c.Provider)
		}
		return nil
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloatOr(key string, fallback float32) float32 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return fallback
	}
	return float32(parsed)
}
