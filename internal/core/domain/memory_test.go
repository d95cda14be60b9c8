package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turn(role Role, text string) ConversationTurn {
	return ConversationTurn{Role: role, Text: text, Timestamp: time.Now()}
}

func TestNewConversationMemory(t *testing.T) {
	m := NewConversationMemory(4)
	require.NotNil(t, m)
	assert.Equal(t, 4, m.Capacity())
	assert.Equal(t, 0, m.Len())
}

func TestNewConversationMemory_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultMemoryCapacity, NewConversationMemory(0).Capacity())
	assert.Equal(t, DefaultMemoryCapacity, NewConversationMemory(-3).Capacity())
}

func TestConversationMemory_AppendWithinCapacity(t *testing.T) {
	m := NewConversationMemory(3)
	m.Append(turn(RoleUser, "one"))
	m.Append(turn(RoleAgent, "two"))

	snap := m.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "one", snap[0].Text)
	assert.Equal(t, "two", snap[1].Text)
}

func TestConversationMemory_EvictsOldest(t *testing.T) {
	m := NewConversationMemory(3)
	for i := 1; i <= 5; i++ {
		m.Append(turn(RoleUser, fmt.Sprintf("msg-%d", i)))
	}

	snap := m.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "msg-3", snap[0].Text)
	assert.Equal(t, "msg-4", snap[1].Text)
	assert.Equal(t, "msg-5", snap[2].Text)
}

func TestConversationMemory_BoundHolds(t *testing.T) {
	// After N+k appends the snapshot has exactly N turns: the last N in order.
	const capacity = 6
	m := NewConversationMemory(capacity)
	for i := 0; i < capacity+7; i++ {
		m.Append(turn(RoleUser, fmt.Sprintf("t%d", i)))
		assert.LessOrEqual(t, m.Len(), capacity)
	}

	snap := m.Snapshot()
	require.Len(t, snap, capacity)
	for i := 0; i < capacity; i++ {
		assert.Equal(t, fmt.Sprintf("t%d", 7+i), snap[i].Text)
	}
}

func TestConversationMemory_SnapshotIsCopy(t *testing.T) {
	m := NewConversationMemory(2)
	m.Append(turn(RoleUser, "a"))
	snap := m.Snapshot()

	m.Append(turn(RoleAgent, "b"))
	m.Append(turn(RoleUser, "c"))

	require.Len(t, snap, 1)
	assert.Equal(t, "a", snap[0].Text)
}

func TestConversationMemory_Clear(t *testing.T) {
	m := NewConversationMemory(2)
	m.Append(turn(RoleUser, "a"))
	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Snapshot())
}
