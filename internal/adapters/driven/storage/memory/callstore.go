package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
)

// Ensure CallStore implements the interface.
var _ driven.CallStore = (*CallStore)(nil)

// CallStore is an in-memory implementation of driven.CallStore. Calls are
// retained forever; their lifetime is bounded by the process.
type CallStore struct {
	mu    sync.RWMutex
	calls map[string]domain.Call
}

// NewCallStore creates a new in-memory call store.
func NewCallStore() *CallStore {
	return &CallStore{calls: make(map[string]domain.Call)}
}

// Save stores or updates a call record. The transcript is copied so later
// mutations by the caller do not leak into the store.
func (s *CallStore) Save(_ context.Context, call *domain.Call) error {
	stored := *call
	stored.Transcript = make([]domain.ConversationTurn, len(call.Transcript))
	copy(stored.Transcript, call.Transcript)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[call.ID] = stored
	return nil
}

// Get retrieves a call by ID.
func (s *CallStore) Get(_ context.Context, id string) (*domain.Call, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	call, ok := s.calls[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := call
	out.Transcript = make([]domain.ConversationTurn, len(call.Transcript))
	copy(out.Transcript, call.Transcript)
	return &out, nil
}

// List returns all calls ordered by creation time.
func (s *CallStore) List(_ context.Context) ([]domain.Call, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(domain.Call) bool { return true }), nil
}

// ListActive returns calls not in a terminal state.
func (s *CallStore) ListActive(_ context.Context) ([]domain.Call, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(c domain.Call) bool { return !c.State.Terminal() }), nil
}

// collect copies matching calls sorted by creation time. Callers hold the
// read lock.
func (s *CallStore) collect(match func(domain.Call) bool) []domain.Call {
	result := make([]domain.Call, 0, len(s.calls))
	for id := range s.calls {
		if match(s.calls[id]) {
			result = append(result, s.calls[id])
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}
