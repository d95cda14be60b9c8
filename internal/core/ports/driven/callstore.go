package driven

import (
	"context"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

// CallStore persists call records. Calls are never deleted; terminal calls
// stay retrievable for history queries.
type CallStore interface {
	// Save stores or updates a call record.
	Save(ctx context.Context, call *domain.Call) error

	// Get retrieves a call by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Call, error)

	// List returns all calls ordered by creation time.
	List(ctx context.Context) ([]domain.Call, error)

	// ListActive returns calls not in a terminal state, ordered by creation
	// time.
	ListActive(ctx context.Context) ([]domain.Call, error)
}
