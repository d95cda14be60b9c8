package domain

import (
	"fmt"
	"strings"
	"time"
)

// Document is a knowledge-base entry. It is the unit of ingestion; retrieval
// operates on the chunks derived from its content.
type Document struct {
	// ID is the unique identifier, generated on creation.
	ID string

	// Title is the human-readable title. Required.
	Title string

	// Category groups related documents (billing, technical, ...).
	Category string

	// Tags are free-form labels. Duplicates are discarded on ingestion.
	Tags []string

	// Content is the full text. Required; chunked on ingestion.
	Content string

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last modified.
	UpdatedAt time.Time
}

// Validate checks the invariants required before ingestion.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: document title is empty", ErrValidation)
	}
	if strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("%w: document content is empty", ErrValidation)
	}
	return nil
}

// Preview returns the leading content capped at n bytes, for listings.
func (d *Document) Preview(n int) string {
	if len(d.Content) <= n {
		return d.Content
	}
	return d.Content[:n] + "..."
}

// DocumentUpdate carries a partial update. Nil fields are left unchanged.
// A non-nil Content triggers a full re-chunk of the document.
type DocumentUpdate struct {
	Title    *string
	Category *string
	Tags     *[]string
	Content  *string
}

// Chunk is a bounded span of a document's text, the unit of retrieval.
// DocumentID is a non-owning back-reference; chunks are destroyed when their
// document is deleted or its content re-ingested.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Sequence is the ordinal position within the document.
	Sequence int

	// Text is the chunk content, at most the configured chunk size.
	// Neighbouring chunks share the configured overlap.
	Text string

	// Embedding is the vector representation used for similarity search.
	Embedding []float32
}

// RetrievalResult is one ranked hit from a retrieval query. Ephemeral;
// produced per query and never stored.
type RetrievalResult struct {
	ChunkID       string
	DocumentID    string
	DocumentTitle string
	Category      string
	Text          string

	// Score is cosine similarity mapped to [0,1]; higher is more relevant.
	Score float64

	// Rank is the 0-based position in descending score order.
	Rank int
}
