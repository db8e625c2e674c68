package embedding

import (
	"fmt"
	"time"
)

// Config holds all embedding provider configuration.
type Config struct {
	// Provider selects which embedding provider to use.
	// Values: "local", "openai", "gemini", "mock". "mock" embeds texts as
	// letter histograms: deterministic scores for offline smoke runs, with
	// no semantic quality.
	Provider string `mapstructure:"provider"`

	// Model overrides the selected provider's model when set.
	Model string `mapstructure:"model"`

	// Timeout bounds a single similarity computation, retries included.
	Timeout time.Duration `mapstructure:"timeout"`

	// CacheSize is the number of text vectors kept in memory. 0 disables
	// the cache.
	CacheSize int `mapstructure:"cache-size"`

	OpenAI OpenAIConfig `mapstructure:"openai"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Local  LocalConfig  `mapstructure:"local"`
	Retry  RetryConfig  `mapstructure:"retry"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api-key"`
	Model   string `mapstructure:"model"`    // Default: "text-embedding-3-small"
	BaseURL string `mapstructure:"base-url"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api-key"`
	Model  string `mapstructure:"model"` // Default: "gemini-embedding"
}

// LocalConfig configures the offline hashing embedder.
type LocalConfig struct {
	Dimensions int `mapstructure:"dimensions"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max-attempts"`
	InitialWait time.Duration `mapstructure:"initial-wait"`
	MaxWait     time.Duration `mapstructure:"max-wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults. Retries are off:
// a failing provider surfaces to the caller on the first error.
func DefaultConfig() Config {
	return Config{
		Provider:  "local",
		Timeout:   10 * time.Second,
		CacheSize: 1024,
		OpenAI: OpenAIConfig{
			Model: "text-embedding-3-small",
		},
		Gemini: GeminiConfig{
			Model: "gemini-embedding",
		},
		Local: LocalConfig{
			Dimensions: 256,
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ResolvedModel returns the model id the configured provider will use.
func (c Config) ResolvedModel() string {
	switch c.Provider {
	case "openai":
		return resolveModel(firstNonEmpty(c.Model, c.OpenAI.Model), openaiModels)
	case "gemini":
		return resolveModel(firstNonEmpty(c.Model, c.Gemini.Model), geminiModels)
	case "local":
		return localModelID(c.Local.Dimensions)
	case "mock":
		return MockModelID
	default:
		return c.Model
	}
}

// Validate checks that the selected provider has what it needs to start.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("INTERVIZ_EMBEDDING_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("INTERVIZ_EMBEDDING_GEMINI_API_KEY is required for the gemini provider")
		}
	case "local":
		if c.Local.Dimensions <= 0 {
			return fmt.Errorf("embedding local dimensions must be positive, got %d", c.Local.Dimensions)
		}
	case "mock":
		// Nothing to check.
	default:
		return fmt.Errorf("unknown embedding provider: %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("embedding timeout must be positive, got %s", c.Timeout)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("embedding cache size must not be negative, got %d", c.CacheSize)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("embedding retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
