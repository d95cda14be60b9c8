package driving

import (
	"context"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

// DocumentInput is the payload for adding a document to the knowledge base.
type DocumentInput struct {
	Title    string
	Category string
	Content  string
	Tags     []string
}

// KnowledgeService owns documents and the retrieval pipeline: chunking,
// embedding, vector indexing, and nearest-neighbour search.
type KnowledgeService interface {
	// AddDocument validates, chunks, embeds, and indexes a new document.
	// Fails domain.ErrValidation on empty title or content.
	AddDocument(ctx context.Context, input DocumentInput) (*domain.Document, error)

	// UpdateDocument applies a partial update. A content change re-runs the
	// full ingestion pipeline; metadata-only updates skip re-chunking.
	// Fails domain.ErrNotFound if the document is absent.
	UpdateDocument(ctx context.Context, id string, update domain.DocumentUpdate) (*domain.Document, error)

	// DeleteDocument removes a document and cascades chunk removal from the
	// vector index. Deleting an absent id fails domain.ErrNotFound; callers
	// must handle double-deletes explicitly.
	DeleteDocument(ctx context.Context, id string) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents ordered by creation time.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// RetrieveRelevant embeds the query and returns the topK nearest chunks
	// with their document context, ranked by descending score.
	// Fails domain.ErrInvalidArgument when topK <= 0.
	RetrieveRelevant(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error)

	// Search is the user-facing entry point for knowledge-base search.
	// A blank query returns no results instead of an error; topK <= 0
	// falls back to a default instead of failing.
	Search(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error)
}
