// Package local provides an offline embedding service based on feature
// hashing. Vectors are deterministic for identical input, so the engine can
// run fully self-contained without any network collaborator.
package local

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultDimensions is the default embedding size.
const DefaultDimensions = 256

// EmbeddingService hashes token features into a fixed-length vector.
// Texts sharing vocabulary land near each other, which is enough signal
// for keyword-heavy knowledge bases.
type EmbeddingService struct {
	dims int
}

// NewEmbeddingService creates a local embedder. Non-positive dims fall back
// to DefaultDimensions.
func NewEmbeddingService(dims int) (*EmbeddingService, error) {
	if dims < 0 {
		return nil, fmt.Errorf("local: dimensions must be non-negative, got %d: %w",
			dims, domain.ErrInvalidConfiguration)
	}
	if dims == 0 {
		dims = DefaultDimensions
	}
	return &EmbeddingService{dims: dims}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, s.dims)

	for _, token := range tokenize(text) {
		// Unigram feature plus a character-trigram smear so near-identical
		// words still overlap.
		bump(v, token, 1.0)
		runes := []rune(token)
		for i := 0; i+3 <= len(runes); i++ {
			bump(v, string(runes[i:i+3]), 0.5)
		}
	}

	normalize(v)
	return v, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dims
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return fmt.Sprintf("local-hash-%d", s.dims)
}

// Ping always succeeds; there is no collaborator to reach.
func (s *EmbeddingService) Ping(context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// bump adds weight to the dimension the feature hashes to. The hash's low
// bit picks the sign so colliding features partially cancel instead of
// always reinforcing.
func bump(v []float32, feature string, weight float32) {
	h := fnv.New32a()
	h.Write([]byte(feature))
	sum := h.Sum32()
	idx := int(sum>>1) % len(v)
	if sum&1 == 1 {
		weight = -weight
	}
	v[idx] += weight
}

// normalize scales v to unit length. All-zero input (no tokens) gets a fixed
// basis vector so the index never sees a degenerate embedding.
func normalize(v []float32) {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		v[0] = 1
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
}
