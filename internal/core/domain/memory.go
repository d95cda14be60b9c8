package domain

// DefaultMemoryCapacity is the number of turns retained for LLM context when
// no capacity is configured.
const DefaultMemoryCapacity = 6

// ConversationMemory is a bounded FIFO of the most recent conversation turns
// for a single call. Appending beyond capacity evicts the oldest turn, so
// Len() <= capacity always holds. It is exclusively owned by one call and is
// not safe for concurrent mutation; the owning call service serializes turns.
type ConversationMemory struct {
	capacity int
	turns    []ConversationTurn
}

// NewConversationMemory creates a memory bounded to capacity turns.
// Non-positive capacities fall back to DefaultMemoryCapacity.
func NewConversationMemory(capacity int) *ConversationMemory {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &ConversationMemory{
		capacity: capacity,
		turns:    make([]ConversationTurn, 0, capacity),
	}
}

// Append records a turn, evicting the oldest when full. O(1) amortized.
func (m *ConversationMemory) Append(turn ConversationTurn) {
	if len(m.turns) == m.capacity {
		copy(m.turns, m.turns[1:])
		m.turns[len(m.turns)-1] = turn
		return
	}
	m.turns = append(m.turns, turn)
}

// Snapshot returns the retained turns oldest-first. The slice is a copy;
// callers may hold it across later appends.
func (m *ConversationMemory) Snapshot() []ConversationTurn {
	out := make([]ConversationTurn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Clear drops all retained turns.
func (m *ConversationMemory) Clear() {
	m.turns = m.turns[:0]
}

// Len returns the number of retained turns.
func (m *ConversationMemory) Len() int {
	return len(m.turns)
}

// Capacity returns the configured bound.
func (m *ConversationMemory) Capacity() int {
	return m.capacity
}
