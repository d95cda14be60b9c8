package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallState_Terminal(t *testing.T) {
	assert.True(t, CallEnded.Terminal())
	assert.True(t, CallFailed.Terminal())
	assert.False(t, CallInitiated.Terminal())
	assert.False(t, CallRinging.Terminal())
	assert.False(t, CallConnected.Terminal())
	assert.False(t, CallActive.Terminal())
}

func TestCallState_CanTransitionTo(t *testing.T) {
	assert.True(t, CallInitiated.CanTransitionTo(CallRinging))
	assert.True(t, CallRinging.CanTransitionTo(CallConnected))
	assert.True(t, CallConnected.CanTransitionTo(CallActive))
	assert.True(t, CallActive.CanTransitionTo(CallEnded))

	// Skipping stages is not allowed.
	assert.False(t, CallInitiated.CanTransitionTo(CallActive))
	assert.False(t, CallRinging.CanTransitionTo(CallActive))
	assert.False(t, CallInitiated.CanTransitionTo(CallEnded))
}

func TestCallState_FailureReachableFromLiveStates(t *testing.T) {
	for _, s := range []CallState{CallInitiated, CallRinging, CallConnected, CallActive} {
		assert.True(t, s.CanTransitionTo(CallFailed), "state %s", s)
	}
}

func TestCallState_NoExitFromTerminal(t *testing.T) {
	all := []CallState{CallInitiated, CallRinging, CallConnected, CallActive, CallEnded, CallFailed}
	for _, next := range all {
		assert.False(t, CallEnded.CanTransitionTo(next), "ended -> %s", next)
		assert.False(t, CallFailed.CanTransitionTo(next), "failed -> %s", next)
	}
}

func TestDocument_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		doc := &Document{Title: "Billing FAQ", Content: "How to check your bill."}
		assert.NoError(t, doc.Validate())
	})

	t.Run("empty title", func(t *testing.T) {
		doc := &Document{Title: "  ", Content: "content"}
		assert.ErrorIs(t, doc.Validate(), ErrValidation)
	})

	t.Run("empty content", func(t *testing.T) {
		doc := &Document{Title: "title", Content: ""}
		assert.ErrorIs(t, doc.Validate(), ErrValidation)
	})
}

func TestIntent_Valid(t *testing.T) {
	for _, i := range Intents() {
		assert.True(t, i.Valid(), "intent %s", i)
	}
	assert.False(t, Intent("sales").Valid())
	assert.False(t, Intent("").Valid())
}

func TestDefaultKeywords_CoversTaxonomy(t *testing.T) {
	kw := DefaultKeywords()
	for _, i := range Intents() {
		_, ok := kw[i]
		assert.True(t, ok, "intent %s has no keyword entry", i)
	}
	assert.Empty(t, kw[IntentGeneral], "general is the fallback and must have no keywords")
}
