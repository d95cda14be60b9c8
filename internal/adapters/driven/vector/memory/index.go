// Package memory provides an in-memory vector index using brute-force cosine
// similarity.
//
// Scores are normalized to [0,1] with the affine mapping (cos+1)/2: 1 means
// identical direction, 0.5 orthogonal, 0 opposite. Vectors are L2-normalized
// at upsert time so queries reduce to a dot product.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

type entry struct {
	vec  []float32 // unit length
	meta map[string]string
}

// Index is an in-memory implementation of driven.VectorIndex. Reads run
// concurrently; writes are mutually exclusive with reads and each other.
type Index struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewIndex creates an empty vector index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]entry)}
}

// Upsert inserts or replaces the vector stored under id. The vector is
// L2-normalized before storage; a zero vector fails ErrDegenerateVector.
func (x *Index) Upsert(_ context.Context, id string, embedding []float32, metadata map[string]string) error {
	unit, err := normalize(embedding)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", id, err)
	}

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries[id] = entry{vec: unit, meta: meta}
	return nil
}

// Remove deletes the vector stored under id. Absent ids are a no-op.
func (x *Index) Remove(_ context.Context, id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.entries, id)
	return nil
}

// Query returns the k highest-scoring entries for the query embedding,
// descending score with ties broken by ascending id. An empty index yields an
// empty result.
func (x *Index) Query(_ context.Context, embedding []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}

	unit, err := normalize(embedding)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(x.entries))
	for id, e := range x.entries {
		hits = append(hits, driven.VectorHit{
			ChunkID:  id,
			Score:    (dot(e.vec, unit) + 1) / 2,
			Metadata: e.meta,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Close releases resources.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries = make(map[string]entry)
	return nil
}

// normalize returns a unit-length copy of v in float32 precision.
func normalize(v []float32) ([]float32, error) {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return nil, domain.ErrDegenerateVector
	}

	norm := math.Sqrt(sum)
	unit := make([]float32, len(v))
	for i, f := range v {
		unit[i] = float32(float64(f) / norm)
	}
	return unit, nil
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
