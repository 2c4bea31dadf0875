// Package config reads service settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/llm"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/research"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Port string

	ModelProvider   string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	MaxOutputTokens int

	// MaxFacetConcurrency bounds concurrent facet calls per avatar. Zero
	// means no bound.
	MaxFacetConcurrency int

	ScrapingBeeAPIKey string
	FetchTimeout      time.Duration

	DatabasePath     string
	ResearchCacheDir string
	ResearchCacheTTL time.Duration

	LogLevel string
	GinMode  string
}

func DefaultConfig() *Config {
	return &Config{
		Port:             "8080",
		ModelProvider:    llm.ProviderAnthropic,
		AnthropicModel:   llm.DefaultAnthropicModel,
		GeminiModel:      llm.DefaultGeminiModel,
		MaxOutputTokens:  llm.DefaultMaxTokens,
		FetchTimeout:     research.DefaultFetchTimeout,
		DatabasePath:     "data/avatars.db",
		ResearchCacheTTL: research.DefaultCacheTTL,
		LogLevel:         "info",
	}
}

// Load reads the configuration like Read and validates it.
func Load(files ...string) (*Config, error) {
	cfg, err := Read(files...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads the given .env files (".env" when none are named), then the
// environment. Missing files are ignored. The result is not validated.
func Read(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.ModelProvider, "MODEL_PROVIDER")
	setString(&c.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&c.AnthropicModel, "ANTHROPIC_MODEL")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.GeminiModel, "GEMINI_MODEL")
	setString(&c.ScrapingBeeAPIKey, "SCRAPINGBEE_API_KEY")
	setString(&c.DatabasePath, "DATABASE_PATH")
	setString(&c.ResearchCacheDir, "RESEARCH_CACHE_DIR")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.GinMode, "GIN_MODE")

	if v := os.Getenv("MAX_OUTPUT_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid MAX_OUTPUT_TOKENS %q", v)
		}
		c.MaxOutputTokens = n
	}
	if v := os.Getenv("MAX_FACET_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid MAX_FACET_CONCURRENCY %q", v)
		}
		c.MaxFacetConcurrency = n
	}
	if err := setDuration(&c.FetchTimeout, "FETCH_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&c.ResearchCacheTTL, "RESEARCH_CACHE_TTL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid %s %q", key, v)
	}
	*dst = d
	return nil
}

// Validate checks that the selected model provider is usable.
func (c *Config) Validate() error {
	switch c.ModelProvider {
	case llm.ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY environment variable is required")
		}
	case llm.ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY environment variable is required")
		}
	default:
		return fmt.Errorf("unknown MODEL_PROVIDER %q", c.ModelProvider)
	}
	return nil
}

// ModelOptions returns the invoker options for the selected provider.
func (c *Config) ModelOptions() llm.Options {
	if c.ModelProvider == llm.ProviderGemini {
		return llm.Options{APIKey: c.GeminiAPIKey, Model: c.GeminiModel, MaxTokens: c.MaxOutputTokens}
	}
	return llm.Options{APIKey: c.AnthropicAPIKey, Model: c.AnthropicModel, MaxTokens: c.MaxOutputTokens}
}

// Logger builds a production zap logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
