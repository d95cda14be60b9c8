// Package chunker provides fixed-size overlapping text chunking.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 50

// Chunker splits text into spans of at most Size characters where
// consecutive spans share Overlap characters of context. Splitting happens on
// character (rune) boundaries, not word boundaries, so output length is
// strictly bounded and fully deterministic.
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithSize sets the chunk size in characters.
func WithSize(size int) Option {
	return func(c *Chunker) { c.size = size }
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) { c.overlap = overlap }
}

// New creates a chunker. The configuration is validated once here: size must
// be positive and overlap must satisfy 0 <= overlap < size.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		size:    DefaultChunkSize,
		overlap: DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.size <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidConfiguration, c.size)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap %d must not be negative", domain.ErrInvalidConfiguration, c.overlap)
	}
	if c.overlap >= c.size {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidConfiguration, c.overlap, c.size)
	}

	return c, nil
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Split breaks text into ordered spans. Every span except possibly the last
// has exactly Size characters; consecutive spans share Overlap characters.
// Empty text produces no spans.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)
	step := c.size - c.overlap

	spans := make([]string, 0, total/step+1)
	for start := 0; start < total; start += step {
		end := start + c.size
		if end > total {
			end = total
		}
		spans = append(spans, string(runes[start:end]))
		if end == total {
			break
		}
	}

	return spans
}

// ChunkDocument splits a document's content and wraps each span in a
// domain.Chunk with a fresh ID and its sequence index. Embeddings are left
// empty; the ingestion pipeline fills them in.
func (c *Chunker) ChunkDocument(doc *domain.Document) []domain.Chunk {
	spans := c.Split(doc.Content)
	chunks := make([]domain.Chunk, len(spans))
	for i, span := range spans {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Sequence:   i,
			Text:       span,
		}
	}
	return chunks
}
