package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testDocument(id string) *domain.Document {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Document{
		ID:        id,
		Title:     "Billing FAQ",
		Category:  "billing",
		Tags:      []string{"billing", "faq"},
		Content:   "Payments are due on the first of each month.",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStore_SaveAndGetDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Category, got.Category)
	assert.Equal(t, doc.Tags, got.Tags)
	assert.Equal(t, doc.Content, got.Content)
}

func TestStore_GetDocument_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveDocument_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, store.SaveDocument(ctx, doc))

	doc.Title = "Billing and Payments FAQ"
	doc.UpdatedAt = doc.UpdatedAt.Add(time.Minute)
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Billing and Payments FAQ", got.Title)

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestStore_SaveChunks_ReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1")))

	first := []domain.Chunk{
		{ID: "c-1", DocumentID: "doc-1", Sequence: 0, Text: "alpha", Embedding: []float32{1, 0}},
		{ID: "c-2", DocumentID: "doc-1", Sequence: 1, Text: "beta", Embedding: []float32{0, 1}},
	}
	require.NoError(t, store.SaveChunks(ctx, "doc-1", first))

	second := []domain.Chunk{
		{ID: "c-3", DocumentID: "doc-1", Sequence: 0, Text: "gamma", Embedding: []float32{0.5, 0.5}},
	}
	require.NoError(t, store.SaveChunks(ctx, "doc-1", second))

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "c-3", chunks[0].ID)
	assert.Equal(t, "gamma", chunks[0].Text)
	assert.Equal(t, []float32{0.5, 0.5}, chunks[0].Embedding)
}

func TestStore_GetChunks_SequenceOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1")))

	chunks := []domain.Chunk{
		{ID: "c-2", DocumentID: "doc-1", Sequence: 2, Text: "third", Embedding: []float32{1}},
		{ID: "c-0", DocumentID: "doc-1", Sequence: 0, Text: "first", Embedding: []float32{1}},
		{ID: "c-1", DocumentID: "doc-1", Sequence: 1, Text: "second", Embedding: []float32{1}},
	}
	require.NoError(t, store.SaveChunks(ctx, "doc-1", chunks))

	got, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "second", got[1].Text)
	assert.Equal(t, "third", got[2].Text)
}

func TestStore_GetChunk(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1")))
	embedding := []float32{0.1, -0.2, 0.3}
	require.NoError(t, store.SaveChunks(ctx, "doc-1", []domain.Chunk{
		{ID: "c-1", DocumentID: "doc-1", Sequence: 0, Text: "hello", Embedding: embedding},
	}))

	chunk, err := store.GetChunk(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", chunk.DocumentID)
	assert.Equal(t, "hello", chunk.Text)
	assert.Equal(t, embedding, chunk.Embedding)

	_, err = store.GetChunk(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DeleteDocument_Cascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1")))
	require.NoError(t, store.SaveChunks(ctx, "doc-1", []domain.Chunk{
		{ID: "c-1", DocumentID: "doc-1", Sequence: 0, Text: "x", Embedding: []float32{1}},
	}))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestStore_DeleteDocument_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.DeleteDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ListDocuments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.Empty(t, mustList(t, store))

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"doc-a", "doc-b", "doc-c"} {
		doc := testDocument(id)
		doc.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		doc.UpdatedAt = doc.CreatedAt
		require.NoError(t, store.SaveDocument(ctx, doc))
	}

	docs := mustList(t, store)
	require.Len(t, docs, 3)
	assert.Equal(t, "doc-a", docs[0].ID)
	assert.Equal(t, "doc-b", docs[1].ID)
	assert.Equal(t, "doc-c", docs[2].ID)
}

func mustList(t *testing.T, store *Store) []domain.Document {
	t.Helper()
	docs, err := store.ListDocuments(context.Background())
	require.NoError(t, err)
	return docs
}

func TestFloat32RoundTrip(t *testing.T) {
	in := []float32{0, 1, -1, 0.5, 3.14159}
	out := bytesToFloat32Slice(float32SliceToBytes(in))
	assert.Equal(t, in, out)

	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
