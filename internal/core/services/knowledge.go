package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/switchboard-labs/switchboard/internal/chunker"
	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
	"github.com/switchboard-labs/switchboard/internal/logger"
)

// DefaultSearchLimit is used by Search when the caller passes topK <= 0.
const DefaultSearchLimit = 3

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService owns the knowledge base: document CRUD plus the
// chunk-embed-index ingestion pipeline and similarity retrieval.
type KnowledgeService struct {
	docStore         driven.DocumentStore
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
	splitter         *chunker.Chunker
	retry            RetryPolicy

	// Serializes ingestion and deletion so the store and the index never
	// disagree about which chunks exist.
	writeMu sync.Mutex
}

// KnowledgeOption configures a KnowledgeService.
type KnowledgeOption func(*KnowledgeService)

// WithChunker overrides the default document splitter.
func WithChunker(c *chunker.Chunker) KnowledgeOption {
	return func(s *KnowledgeService) {
		if c != nil {
			s.splitter = c
		}
	}
}

// WithKnowledgeRetryPolicy overrides the embedding retry policy.
func WithKnowledgeRetryPolicy(p RetryPolicy) KnowledgeOption {
	return func(s *KnowledgeService) {
		s.retry = p
	}
}

// NewKnowledgeService creates a new knowledge service.
func NewKnowledgeService(
	docStore driven.DocumentStore,
	vectorIndex driven.VectorIndex,
	embeddingService driven.EmbeddingService,
	opts ...KnowledgeOption,
) *KnowledgeService {
	defaultSplitter, _ := chunker.New()
	s := &KnowledgeService{
		docStore:         docStore,
		vectorIndex:      vectorIndex,
		embeddingService: embeddingService,
		splitter:         defaultSplitter,
		retry:            DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddDocument validates, chunks, embeds, and indexes a new document.
func (s *KnowledgeService) AddDocument(
	ctx context.Context, input driving.DocumentInput,
) (*domain.Document, error) {
	now := time.Now().UTC()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(input.Title),
		Category:  strings.TrimSpace(input.Category),
		Tags:      input.Tags,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	logger.Section("Document Ingestion")
	logger.Debug("Adding document %q (%d bytes)", doc.Title, len(doc.Content))

	if err := s.ingest(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	logger.Info("Document %s ingested", doc.ID)
	return doc, nil
}

// UpdateDocument applies a partial update. A content change re-runs the full
// ingestion pipeline; metadata-only updates leave the chunks alone.
func (s *KnowledgeService) UpdateDocument(
	ctx context.Context, id string, update domain.DocumentUpdate,
) (*domain.Document, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	doc, err := s.docStore.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	contentChanged := false
	if update.Title != nil {
		doc.Title = strings.TrimSpace(*update.Title)
	}
	if update.Category != nil {
		doc.Category = strings.TrimSpace(*update.Category)
	}
	if update.Tags != nil {
		doc.Tags = *update.Tags
	}
	if update.Content != nil && *update.Content != doc.Content {
		doc.Content = *update.Content
		contentChanged = true
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.UpdatedAt = time.Now().UTC()

	if contentChanged {
		logger.Debug("Content changed for %s, re-chunking", id)
		// Embed the replacement chunks before touching the index. If the
		// embedder is down the old chunk set stays searchable.
		chunks, err := s.embedChunks(ctx, doc)
		if err != nil {
			return nil, err
		}
		if err := s.removeChunksFromIndex(ctx, id); err != nil {
			return nil, err
		}
		if err := s.commitChunks(ctx, doc.ID, chunks); err != nil {
			return nil, err
		}
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return doc, nil
}

// DeleteDocument removes a document, its chunks, and its index entries.
func (s *KnowledgeService) DeleteDocument(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.removeChunksFromIndex(ctx, id); err != nil {
		return err
	}
	if err := s.docStore.DeleteDocument(ctx, id); err != nil {
		return err
	}
	logger.Info("Document %s deleted", id)
	return nil
}

// GetDocument retrieves a document by ID.
func (s *KnowledgeService) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, id)
}

// ListDocuments returns all documents ordered by creation time.
func (s *KnowledgeService) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// RetrieveRelevant embeds the query and returns the topK nearest chunks with
// their document context.
func (s *KnowledgeService) RetrieveRelevant(
	ctx context.Context, query string, topK int,
) ([]domain.RetrievalResult, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d: %w", topK, domain.ErrInvalidArgument)
	}

	logger.Section("Retrieval")
	logger.Debug("Query: %q, topK: %d", query, topK)

	embedding, err := s.embedWithRetry(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := s.vectorIndex.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}
	logger.Debug("Index returned %d hits", len(hits))

	return s.hydrate(ctx, hits)
}

// Search is the user-facing knowledge-base search. A blank query yields no
// results; a non-positive topK falls back to DefaultSearchLimit.
func (s *KnowledgeService) Search(
	ctx context.Context, query string, topK int,
) ([]domain.RetrievalResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.RetrievalResult{}, nil
	}
	if topK <= 0 {
		topK = DefaultSearchLimit
	}
	return s.RetrieveRelevant(ctx, query, topK)
}

// ingest chunks the document, embeds every chunk, pushes the vectors into the
// index, and persists the chunk set. Caller holds writeMu.
func (s *KnowledgeService) ingest(ctx context.Context, doc *domain.Document) error {
	chunks, err := s.embedChunks(ctx, doc)
	if err != nil {
		return err
	}
	return s.commitChunks(ctx, doc.ID, chunks)
}

// embedChunks splits the document and embeds every chunk, leaving the index
// and the store untouched. An embedder outage surfaces here before any
// existing state has been modified. Caller holds writeMu.
func (s *KnowledgeService) embedChunks(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	chunks := s.splitter.ChunkDocument(doc)
	logger.Debug("Split into %d chunks", len(chunks))

	if len(chunks) == 0 {
		return chunks, nil
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	var embeddings [][]float32
	err := withRetry(ctx, s.retry, "embed batch", func() error {
		var embedErr error
		embeddings, embedErr = s.embeddingService.EmbedBatch(ctx, texts)
		return embedErr
	})
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks: %w",
			len(embeddings), len(chunks), domain.ErrEmbeddingUnavailable)
	}

	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}
	return chunks, nil
}

// commitChunks pushes embedded chunks into the index and persists the chunk
// set. Caller holds writeMu.
func (s *KnowledgeService) commitChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error {
	for i := range chunks {
		meta := map[string]string{"document_id": documentID}
		if err := s.vectorIndex.Upsert(ctx, chunks[i].ID, chunks[i].Embedding, meta); err != nil {
			return fmt.Errorf("index chunk %s: %w", chunks[i].ID, err)
		}
	}

	if err := s.docStore.SaveChunks(ctx, documentID, chunks); err != nil {
		return fmt.Errorf("save chunks: %w", err)
	}
	return nil
}

// removeChunksFromIndex drops a document's index entries. Caller holds writeMu.
func (s *KnowledgeService) removeChunksFromIndex(ctx context.Context, documentID string) error {
	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get chunks for %s: %w", documentID, err)
	}
	for i := range chunks {
		if err := s.vectorIndex.Remove(ctx, chunks[i].ID); err != nil {
			return fmt.Errorf("remove chunk %s from index: %w", chunks[i].ID, err)
		}
	}
	return nil
}

// embedWithRetry embeds a single text with the configured retry policy.
func (s *KnowledgeService) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	var embedding []float32
	err := withRetry(ctx, s.retry, "embed query", func() error {
		var embedErr error
		embedding, embedErr = s.embeddingService.Embed(ctx, text)
		return embedErr
	})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return embedding, nil
}

// hydrate resolves index hits to full retrieval results. Hits whose chunk or
// document vanished between indexing and querying are skipped.
func (s *KnowledgeService) hydrate(ctx context.Context, hits []driven.VectorHit) ([]domain.RetrievalResult, error) {
	results := make([]domain.RetrievalResult, 0, len(hits))

	for _, hit := range hits {
		chunk, err := s.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", hit.ChunkID, err)
		}

		doc, err := s.docStore.GetDocument(ctx, chunk.DocumentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get document %s: %w", chunk.DocumentID, err)
		}

		results = append(results, domain.RetrievalResult{
			ChunkID:       chunk.ID,
			DocumentID:    doc.ID,
			DocumentTitle: doc.Title,
			Category:      doc.Category,
			Text:          chunk.Text,
			Score:         hit.Score,
			Rank:          len(results),
		})
	}

	return results, nil
}
