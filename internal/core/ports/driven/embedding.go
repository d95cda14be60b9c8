package driven

import "context"

// EmbeddingService maps text to a fixed-length vector. Deterministic for
// identical input; a collaborator outage surfaces as
// domain.ErrEmbeddingUnavailable (wrapped).
//
// Embedding-space consistency is a hard invariant: the same service instance
// must embed both ingested chunks and queries, or scores are meaningless.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Local deterministic feature hashing (offline mode)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the collaborator is reachable. Used by health checks.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
