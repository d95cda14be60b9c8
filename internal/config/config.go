// Package config loads Switchboard configuration from a TOML file with
// environment overrides for secrets. Missing files fall back to defaults so
// the engine runs out of the box in offline mode.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

// Provider names accepted by the embedding and LLM sections.
const (
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"
	ProviderCanned = "canned"
)

// Storage backend names.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config is the full engine configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Memory    MemoryConfig    `toml:"memory"`
	Intent    IntentConfig    `toml:"intent"`
	Retry     RetryConfig     `toml:"retry"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Seed      SeedConfig      `toml:"seed"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig selects the document store backend.
type StorageConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `toml:"backend"`

	// DataDir is the sqlite data directory; empty means ~/.switchboard/data.
	DataDir string `toml:"data_dir"`
}

// ChunkingConfig holds the document splitter settings.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// RetrievalConfig holds per-turn retrieval settings.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// MemoryConfig holds conversation memory settings.
type MemoryConfig struct {
	// Capacity is the number of turns kept in the context window.
	Capacity int `toml:"capacity"`
}

// IntentConfig holds classifier tuning.
type IntentConfig struct {
	ConfidenceFloor  float64 `toml:"confidence_floor"`
	EscalationStreak int     `toml:"escalation_streak"`
}

// RetryConfig bounds retries against external collaborators.
type RetryConfig struct {
	MaxAttempts     int           `toml:"max_attempts"`
	InitialInterval time.Duration `toml:"initial_interval"`
	MaxInterval     time.Duration `toml:"max_interval"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" or "local".
	Provider string `toml:"provider"`

	// Model is the OpenAI embedding model.
	Model string `toml:"model"`

	// Dimensions applies to the local provider and to the
	// text-embedding-3-* models.
	Dimensions int `toml:"dimensions"`

	// APIKey is usually supplied via OPENAI_API_KEY instead.
	APIKey string `toml:"api_key"`

	BaseURL string `toml:"base_url"`
}

// LLMConfig selects and configures the response generator.
type LLMConfig struct {
	// Provider is "openai" or "canned".
	Provider string `toml:"provider"`

	Model       string  `toml:"model"`
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// SeedConfig controls knowledge-base seeding at startup.
type SeedConfig struct {
	// Enabled loads the built-in knowledge base when the store is empty.
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no file is present: offline
// providers, in-memory storage, engine defaults everywhere.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Host: "0.0.0.0", Port: 8000},
		Storage:   StorageConfig{Backend: StorageMemory},
		Chunking:  ChunkingConfig{Size: 500, Overlap: 50},
		Retrieval: RetrievalConfig{TopK: 3},
		Memory:    MemoryConfig{Capacity: domain.DefaultMemoryCapacity},
		Intent:    IntentConfig{ConfidenceFloor: 0.34, EscalationStreak: 2},
		Retry: RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
		},
		Embedding: EmbeddingConfig{Provider: ProviderLocal},
		LLM:       LLMConfig{Provider: ProviderCanned},
		Seed:      SeedConfig{Enabled: true},
	}
}

// Load reads configuration from path. An empty path tries
// ~/.switchboard/config.toml; a missing file yields the defaults. A .env file
// in the working directory and process environment variables supply secrets.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".switchboard", "config.toml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %v: %w", path, err, domain.ErrInvalidConfiguration)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays secrets and provider switches from the environment.
func applyEnv(cfg *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if cfg.Embedding.APIKey == "" {
			cfg.Embedding.APIKey = key
		}
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = key
		}
	}
	if p := os.Getenv("SWITCHBOARD_EMBEDDING_PROVIDER"); p != "" {
		cfg.Embedding.Provider = p
	}
	if p := os.Getenv("SWITCHBOARD_LLM_PROVIDER"); p != "" {
		cfg.LLM.Provider = p
	}
	if b := os.Getenv("SWITCHBOARD_STORAGE_BACKEND"); b != "" {
		cfg.Storage.Backend = b
	}
}

// Validate rejects configurations the engine cannot start with. Every
// violation is reported as domain.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf(format+": %w", append(args, domain.ErrInvalidConfiguration)...)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fail("server port %d out of range", c.Server.Port)
	}

	switch c.Storage.Backend {
	case StorageMemory, StorageSQLite:
	default:
		return fail("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Chunking.Size <= 0 {
		return fail("chunk size must be positive, got %d", c.Chunking.Size)
	}
	if c.Chunking.Overlap < 0 {
		return fail("chunk overlap must be non-negative, got %d", c.Chunking.Overlap)
	}
	if c.Chunking.Overlap >= c.Chunking.Size {
		return fail("chunk overlap %d must be smaller than chunk size %d",
			c.Chunking.Overlap, c.Chunking.Size)
	}

	if c.Retrieval.TopK <= 0 {
		return fail("retrieval top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.Memory.Capacity <= 0 {
		return fail("memory capacity must be positive, got %d", c.Memory.Capacity)
	}
	if c.Intent.ConfidenceFloor <= 0 || c.Intent.ConfidenceFloor >= 1 {
		return fail("intent confidence floor must be in (0,1), got %g", c.Intent.ConfidenceFloor)
	}
	if c.Intent.EscalationStreak <= 0 {
		return fail("intent escalation streak must be positive, got %d", c.Intent.EscalationStreak)
	}
	if c.Retry.MaxAttempts <= 0 {
		return fail("retry max attempts must be positive, got %d", c.Retry.MaxAttempts)
	}

	switch c.Embedding.Provider {
	case ProviderOpenAI:
		if c.Embedding.APIKey == "" {
			return fail("embedding provider %q requires an API key", ProviderOpenAI)
		}
	case ProviderLocal:
	default:
		return fail("unknown embedding provider %q", c.Embedding.Provider)
	}

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return fail("llm provider %q requires an API key", ProviderOpenAI)
		}
	case ProviderCanned:
	default:
		return fail("unknown llm provider %q", c.LLM.Provider)
	}

	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
