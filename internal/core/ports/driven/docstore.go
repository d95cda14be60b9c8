package driven

import (
	"context"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

// DocumentStore persists documents and their chunks. Implementations must be
// safe for concurrent use; the knowledge service serializes writes but reads
// may arrive at any time.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks replaces the stored chunks of a document. All chunks must
	// reference the same document.
	SaveChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if absent.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document in sequence order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	// Returns domain.ErrNotFound if absent.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// DeleteDocument removes a document and its chunks.
	// Returns domain.ErrNotFound if the document is absent.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all documents ordered by creation time.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
