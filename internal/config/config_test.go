package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ProviderLocal, cfg.Embedding.Provider)
	assert.Equal(t, ProviderCanned, cfg.LLM.Provider)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, 500, cfg.Chunking.Size)
	assert.Equal(t, 50, cfg.Chunking.Overlap)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, domain.DefaultMemoryCapacity, cfg.Memory.Capacity)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9090

[storage]
backend = "sqlite"
data_dir = "/tmp/kb"

[chunking]
size = 200
overlap = 20

[retry]
max_attempts = 5
initial_interval = "100ms"
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StorageSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/kb", cfg.Storage.DataDir)
	assert.Equal(t, 200, cfg.Chunking.Size)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Retry.InitialInterval)
	// Untouched sections keep their defaults.
	assert.Equal(t, 3, cfg.Retrieval.TopK)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0600))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SWITCHBOARD_EMBEDDING_PROVIDER", ProviderOpenAI)
	t.Setenv("SWITCHBOARD_LLM_PROVIDER", ProviderOpenAI)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Embedding.Provider)
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestValidate(t *testing.T) {
	mutations := map[string]func(*Config){
		"port zero":             func(c *Config) { c.Server.Port = 0 },
		"port too high":         func(c *Config) { c.Server.Port = 70000 },
		"bad backend":           func(c *Config) { c.Storage.Backend = "redis" },
		"chunk size zero":       func(c *Config) { c.Chunking.Size = 0 },
		"negative overlap":      func(c *Config) { c.Chunking.Overlap = -1 },
		"overlap >= size":       func(c *Config) { c.Chunking.Overlap = c.Chunking.Size },
		"top_k zero":            func(c *Config) { c.Retrieval.TopK = 0 },
		"memory zero":           func(c *Config) { c.Memory.Capacity = 0 },
		"floor zero":            func(c *Config) { c.Intent.ConfidenceFloor = 0 },
		"floor one":             func(c *Config) { c.Intent.ConfidenceFloor = 1 },
		"streak zero":           func(c *Config) { c.Intent.EscalationStreak = 0 },
		"retry attempts zero":   func(c *Config) { c.Retry.MaxAttempts = 0 },
		"openai embed no key":   func(c *Config) { c.Embedding.Provider = ProviderOpenAI },
		"openai llm no key":     func(c *Config) { c.LLM.Provider = ProviderOpenAI },
		"unknown embed":         func(c *Config) { c.Embedding.Provider = "bert" },
		"unknown llm":           func(c *Config) { c.LLM.Provider = "llama" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfiguration)
		})
	}

	assert.NoError(t, Default().Validate())
}
