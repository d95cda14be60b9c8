package cli

import (
	"context"
	"fmt"

	"github.com/switchboard-labs/switchboard/internal/adapters/driven/embedding/local"
	embopenai "github.com/switchboard-labs/switchboard/internal/adapters/driven/embedding/openai"
	"github.com/switchboard-labs/switchboard/internal/adapters/driven/llm/canned"
	llmopenai "github.com/switchboard-labs/switchboard/internal/adapters/driven/llm/openai"
	storememory "github.com/switchboard-labs/switchboard/internal/adapters/driven/storage/memory"
	"github.com/switchboard-labs/switchboard/internal/adapters/driven/storage/sqlite"
	vecmemory "github.com/switchboard-labs/switchboard/internal/adapters/driven/vector/memory"
	"github.com/switchboard-labs/switchboard/internal/chunker"
	"github.com/switchboard-labs/switchboard/internal/config"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
	"github.com/switchboard-labs/switchboard/internal/core/services"
	"github.com/switchboard-labs/switchboard/internal/logger"
	"github.com/switchboard-labs/switchboard/internal/seed"
)

// engineCfg holds the loaded configuration once ensureServices has run.
var engineCfg *config.Config

// ensureServices assembles the engine from configuration. It is a no-op when
// services are already wired.
func ensureServices(ctx context.Context) error {
	if callService != nil && knowledgeService != nil {
		return nil
	}

	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	return buildEngine(ctx, cfg)
}

// buildEngine constructs stores, collaborator adapters, and core services
// per the configuration, then seeds the knowledge base when enabled.
func buildEngine(ctx context.Context, cfg *config.Config) error {
	logger.Section("Engine Assembly")
	logger.Debug("storage=%s embedding=%s llm=%s",
		cfg.Storage.Backend, cfg.Embedding.Provider, cfg.LLM.Provider)

	var closers []func() error
	closeAll := func() error {
		var first error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	var docStore driven.DocumentStore
	switch cfg.Storage.Backend {
	case config.StorageSQLite:
		store, err := sqlite.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		closers = append(closers, store.Close)
		docStore = store
	default:
		docStore = storememory.NewDocumentStore()
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		_ = closeAll()
		return err
	}
	closers = append(closers, embedder.Close)

	llm, err := buildLLM(cfg)
	if err != nil {
		_ = closeAll()
		return err
	}
	closers = append(closers, llm.Close)

	splitter, err := chunker.New(
		chunker.WithSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	if err != nil {
		_ = closeAll()
		return err
	}

	retry := services.RetryPolicy{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
	}

	knowledge := services.NewKnowledgeService(
		docStore,
		vecmemory.NewIndex(),
		embedder,
		services.WithChunker(splitter),
		services.WithKnowledgeRetryPolicy(retry),
	)

	classifier := services.NewIntentClassifier(
		services.WithConfidenceFloor(cfg.Intent.ConfidenceFloor),
		services.WithEscalationStreak(cfg.Intent.EscalationStreak),
	)

	calls := services.NewCallService(
		storememory.NewCallStore(),
		knowledge,
		llm,
		services.WithClassifier(classifier),
		services.WithRetrievalTopK(cfg.Retrieval.TopK),
		services.WithMemoryCapacity(cfg.Memory.Capacity),
		services.WithCallRetryPolicy(retry),
	)

	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, knowledge); err != nil {
			_ = closeAll()
			return fmt.Errorf("seed knowledge base: %w", err)
		}
	}

	engineCfg = cfg
	callService = calls
	knowledgeService = knowledge
	embeddingService = embedder
	llmService = llm
	engineClose = closeAll
	return nil
}

func buildEmbedder(cfg *config.Config) (driven.EmbeddingService, error) {
	if cfg.Embedding.Provider == config.ProviderOpenAI {
		return embopenai.NewEmbeddingService(embopenai.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	}
	return local.NewEmbeddingService(cfg.Embedding.Dimensions)
}

func buildLLM(cfg *config.Config) (driven.LLMService, error) {
	if cfg.LLM.Provider == config.ProviderOpenAI {
		return llmopenai.NewLLMService(llmopenai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
		})
	}
	return canned.NewLLMService(), nil
}
