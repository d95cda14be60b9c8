package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchboard-labs/switchboard/internal/adapters/driven/embedding/local"
	storagemem "github.com/switchboard-labs/switchboard/internal/adapters/driven/storage/memory"
	vectormem "github.com/switchboard-labs/switchboard/internal/adapters/driven/vector/memory"
	"github.com/switchboard-labs/switchboard/internal/core/services"
)

func newKnowledge(t *testing.T) *services.KnowledgeService {
	t.Helper()
	embedder, err := local.NewEmbeddingService(0)
	require.NoError(t, err)
	return services.NewKnowledgeService(
		storagemem.NewDocumentStore(), vectormem.NewIndex(), embedder)
}

func TestRun_SeedsEmptyStore(t *testing.T) {
	knowledge := newKnowledge(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, knowledge))

	docs, err := knowledge.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, len(Documents))
}

func TestRun_Idempotent(t *testing.T) {
	knowledge := newKnowledge(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, knowledge))
	require.NoError(t, Run(ctx, knowledge))

	docs, err := knowledge.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, len(Documents))
}

func TestSeededContentIsRetrievable(t *testing.T) {
	knowledge := newKnowledge(t)
	ctx := context.Background()
	require.NoError(t, Run(ctx, knowledge))

	results, err := knowledge.Search(ctx, "how do I check my bill", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
}
