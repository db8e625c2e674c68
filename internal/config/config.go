// Package config loads interviz settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/interviz/internal/embedding"
	"github.com/abhisek/interviz/internal/evaluator"
	"github.com/abhisek/interviz/internal/selector"
	"github.com/abhisek/interviz/internal/server"
)

const (
	// AppName is the config file base name and env prefix source.
	AppName = "interviz"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "INTERVIZ"
)

// Config is the full application configuration.
type Config struct {
	Log       LogConfig        `mapstructure:"log"`
	DB        DBConfig         `mapstructure:"db"`
	Corpus    CorpusConfig     `mapstructure:"corpus"`
	Embedding embedding.Config `mapstructure:"embedding"`
	Selector  selector.Config  `mapstructure:"selector"`
	Server    server.Config    `mapstructure:"server"`
}

// LogConfig controls logger output.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// DBConfig controls the event log.
type DBConfig struct {
	// Path is the SQLite file. Empty means the default data dir location.
	Path string `mapstructure:"path"`

	// Disabled turns the event log off entirely.
	Disabled bool `mapstructure:"disabled"`
}

// CorpusConfig points at an external question corpus.
type CorpusConfig struct {
	// Path is a JSON or YAML corpus. Empty uses the built-in corpus.
	Path string `mapstructure:"path"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Embedding: embedding.DefaultConfig(),
		Selector:  selector.DefaultConfig(),
		Server:    server.DefaultConfig(),
	}
}

// Load reads configuration into a Config. When file is empty an optional
// interviz.yaml in the working directory is used. v may be nil; pass the
// viper instance that carries bound flags otherwise.
func Load(v *viper.Viper, file string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(AppName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// SetDefaults registers every known key on v. AutomaticEnv only resolves
// keys viper already knows about, so the secret keys are registered too.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)

	v.SetDefault("db.path", d.DB.Path)
	v.SetDefault("db.disabled", d.DB.Disabled)

	v.SetDefault("corpus.path", d.Corpus.Path)

	e := d.Embedding
	v.SetDefault("embedding.provider", e.Provider)
	v.SetDefault("embedding.model", e.Model)
	v.SetDefault("embedding.timeout", e.Timeout)
	v.SetDefault("embedding.cache-size", e.CacheSize)
	v.SetDefault("embedding.openai.api-key", e.OpenAI.APIKey)
	v.SetDefault("embedding.openai.model", e.OpenAI.Model)
	v.SetDefault("embedding.openai.base-url", e.OpenAI.BaseURL)
	v.SetDefault("embedding.gemini.api-key", e.Gemini.APIKey)
	v.SetDefault("embedding.gemini.model", e.Gemini.Model)
	v.SetDefault("embedding.local.dimensions", e.Local.Dimensions)
	v.SetDefault("embedding.retry.max-attempts", e.Retry.MaxAttempts)
	v.SetDefault("embedding.retry.initial-wait", e.Retry.InitialWait)
	v.SetDefault("embedding.retry.max-wait", e.Retry.MaxWait)
	v.SetDefault("embedding.retry.multiplier", e.Retry.Multiplier)

	v.SetDefault("selector.weakest-k", d.Selector.WeakestK)
	v.SetDefault("selector.neutral-score", d.Selector.NeutralScore)
	v.SetDefault("selector.seed", d.Selector.Seed)

	s := d.Server
	v.SetDefault("server.addr", s.Addr)
	v.SetDefault("server.cookie-max-age", s.CookieMaxAge)
	v.SetDefault("server.cookie-secure", s.CookieSecure)
	v.SetDefault("server.shutdown-timeout", s.ShutdownTimeout)
	v.SetDefault("server.request-timeout", s.RequestTimeout)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Embedding.Validate(); err != nil {
		return err
	}
	if err := c.Selector.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// Evaluator derives the evaluator settings. Similarity calls share the
// embedding timeout.
func (c *Config) Evaluator() evaluator.Config {
	return evaluator.Config{Timeout: c.Embedding.Timeout}
}
