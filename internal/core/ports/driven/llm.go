package driven

import (
	"context"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

// LLMService generates the agent's reply for one turn. A collaborator outage
// or timeout surfaces as domain.ErrGenerationUnavailable (wrapped); the call
// service applies bounded retry before falling back to an apology response.
type LLMService interface {
	// Generate produces the agent response for the given turn.
	Generate(ctx context.Context, req GenerationRequest) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the collaborator is reachable. Used by health checks.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerationRequest carries everything the collaborator needs to answer one
// user message: the prompt template, the retrieved knowledge context, and the
// bounded conversation memory.
type GenerationRequest struct {
	// SystemPrompt frames the agent persona and response constraints.
	SystemPrompt string

	// UserMessage is the message being answered.
	UserMessage string

	// Intent is the classification of UserMessage.
	Intent domain.Intent

	// Context holds the retrieved chunks, descending score order.
	Context []domain.RetrievalResult

	// Memory is the conversation memory snapshot, oldest first.
	Memory []domain.ConversationTurn
}
