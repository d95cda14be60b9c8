package driven

import "context"

// VectorIndex stores chunk embeddings and answers nearest-neighbour queries.
//
// Scores are cosine similarity mapped onto [0,1] via (cos+1)/2, so 1 means
// identical direction, 0.5 orthogonal, 0 opposite. Equal scores tie-break on
// ascending chunk ID to keep result order deterministic.
type VectorIndex interface {
	// Upsert inserts or replaces the vector stored under id. The vector must
	// be L2-normalizable; a zero vector fails domain.ErrDegenerateVector.
	Upsert(ctx context.Context, id string, embedding []float32, metadata map[string]string) error

	// Remove deletes the vector stored under id. Removing an absent id is a
	// no-op.
	Remove(ctx context.Context, id string) error

	// Query finds the k highest-scoring vectors for the query embedding.
	// An empty index yields an empty result, not an error.
	Query(ctx context.Context, embedding []float32, k int) ([]VectorHit, error)

	// Close releases resources.
	Close() error
}

// VectorHit is one similarity search result.
type VectorHit struct {
	// ChunkID identifies the matched vector.
	ChunkID string

	// Score is the normalized cosine similarity in [0,1].
	Score float64

	// Metadata echoes the metadata stored at upsert time.
	Metadata map[string]string
}
