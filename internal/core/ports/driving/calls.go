package driving

import (
	"context"
	"time"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

// CallRequest is the payload for initiating a call.
type CallRequest struct {
	UserName  string
	UserPhone string
	Topic     string
}

// TurnResult is the structured outcome of one processed user message.
type TurnResult struct {
	CallID           string
	AgentResponse    string
	Intent           domain.Intent
	Confidence       float64
	RequiresTransfer bool
	TransferReason   string

	// Degraded is set when the turn completed with a fallback response
	// because a collaborator was unavailable after retries.
	Degraded bool

	// Retrieved holds the knowledge chunks used for the response.
	Retrieved []domain.RetrievalResult

	Timestamp time.Time
}

// CallHistory is the full transcript view of a call.
type CallHistory struct {
	Call    domain.Call
	Turns   []domain.ConversationTurn
	Summary *domain.CallSummary
}

// CallService owns the call lifecycle and aggregates memory, classification,
// and retrieval into per-turn responses. Turns for a single call are
// serialized; turns across calls proceed in parallel.
type CallService interface {
	// InitiateCall creates a call and drives it through the alerting and
	// connection sequence to ACTIVE.
	InitiateCall(ctx context.Context, req CallRequest) (*domain.Call, error)

	// ProcessMessage runs one turn: classify, retrieve, generate, record.
	// Fails domain.ErrInvalidCallState unless the call is ACTIVE.
	ProcessMessage(ctx context.Context, callID, text string) (*TurnResult, error)

	// EndCall transitions the call to ENDED and computes its summary. An
	// in-flight turn completes first. Fails domain.ErrInvalidCallState on
	// terminal calls.
	EndCall(ctx context.Context, callID string) (*domain.Call, error)

	// GetCall retrieves a call by ID.
	GetCall(ctx context.Context, callID string) (*domain.Call, error)

	// GetHistory returns the full transcript and summary of a call.
	GetHistory(ctx context.Context, callID string) (*CallHistory, error)

	// ActiveCalls returns all calls not in a terminal state.
	ActiveCalls(ctx context.Context) ([]domain.Call, error)
}
