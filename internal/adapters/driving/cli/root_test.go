package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/switchboard-labs/switchboard/internal/adapters/driven/embedding/local"
	"github.com/switchboard-labs/switchboard/internal/adapters/driven/llm/canned"
	storagemem "github.com/switchboard-labs/switchboard/internal/adapters/driven/storage/memory"
	vectormem "github.com/switchboard-labs/switchboard/internal/adapters/driven/vector/memory"
	"github.com/switchboard-labs/switchboard/internal/core/services"
)

// setupTestServices wires an offline engine into the command tree and
// returns a cleanup that unwires it.
func setupTestServices(t *testing.T) func() {
	t.Helper()
	embedder, err := local.NewEmbeddingService(0)
	require.NoError(t, err)
	knowledge := services.NewKnowledgeService(
		storagemem.NewDocumentStore(), vectormem.NewIndex(), embedder)
	calls := services.NewCallService(storagemem.NewCallStore(), knowledge, canned.NewLLMService())

	Wire(calls, knowledge, embedder, canned.NewLLMService())
	return func() {
		callService = nil
		knowledgeService = nil
		embeddingService = nil
		llmService = nil
		engineClose = nil
	}
}

func TestRootCmd_Use(t *testing.T) {
	require.Equal(t, "switchboard", rootCmd.Use)
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}
