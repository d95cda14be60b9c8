package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

func TestClassify_KeywordMatching(t *testing.T) {
	c := NewIntentClassifier()

	tests := []struct {
		name    string
		message string
		want    domain.Intent
	}{
		{"billing", "I have a question about my bill", domain.IntentBilling},
		{"billing refund", "I want a refund for this charge", domain.IntentBilling},
		{"technical", "the app keeps showing an error and is not working", domain.IntentTechnical},
		{"account", "I forgot my password and cannot login", domain.IntentAccount},
		{"support", "can you help me set this up", domain.IntentSupport},
		{"cancel", "I want to cancel my subscription", domain.IntentCancel},
		{"transfer", "let me speak to a human", domain.IntentTransfer},
		{"general", "the weather is nice today", domain.IntentGeneral},
		{"case insensitive", "MY BILL IS WRONG", domain.IntentBilling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.message, nil)
			assert.Equal(t, tt.want, got.Intent)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewIntentClassifier()

	first := c.Classify("my bill has an error", nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify("my bill has an error", nil))
	}
}

func TestClassify_TieBreaksOnDeclarationOrder(t *testing.T) {
	c := NewIntentClassifier()

	// One billing keyword and one technical keyword: billing is declared
	// first in the taxonomy, so it wins.
	got := c.Classify("there is a problem with my bill", nil)
	assert.Equal(t, domain.IntentBilling, got.Intent)
}

func TestClassify_ConfidenceIsMatchRatio(t *testing.T) {
	c := NewIntentClassifier()

	// "bill" and "charge" match two of the seven billing keywords.
	got := c.Classify("this charge on my bill is wrong", nil)
	assert.Equal(t, domain.IntentBilling, got.Intent)
	assert.InDelta(t, 2.0/7.0, got.Confidence, 1e-9)

	unmatched := c.Classify("hello there", nil)
	assert.Equal(t, domain.IntentGeneral, unmatched.Intent)
	assert.Zero(t, unmatched.Confidence)
}

func TestClassify_TransferIntentAlwaysEscalates(t *testing.T) {
	c := NewIntentClassifier()

	got := c.Classify("I need to speak to a representative", nil)
	assert.Equal(t, domain.IntentTransfer, got.Intent)
	assert.True(t, got.RequiresTransfer)
	assert.NotEmpty(t, got.TransferReason)
}

func TestClassify_EscalatesAfterLowConfidenceStreak(t *testing.T) {
	c := NewIntentClassifier(WithEscalationStreak(3))

	// Two prior unclear user turns already in memory; this third unclear
	// message completes the streak.
	memory := []domain.ConversationTurn{
		turn(domain.RoleUser, "hmm", 0),
		turn(domain.RoleAgent, "could you clarify?", 0),
		turn(domain.RoleUser, "what", 0),
		turn(domain.RoleAgent, "sorry, I did not catch that", 0),
	}

	got := c.Classify("gibberish again", memory)
	assert.Equal(t, domain.IntentGeneral, got.Intent)
	assert.True(t, got.RequiresTransfer)
	assert.Equal(t, "repeated low-confidence turns", got.TransferReason)
}

func TestClassify_ConfidentTurnResetsStreak(t *testing.T) {
	c := NewIntentClassifier(WithEscalationStreak(3))

	memory := []domain.ConversationTurn{
		turn(domain.RoleUser, "hmm", 0),
		turn(domain.RoleUser, "my bill is wrong", 0.9),
		turn(domain.RoleUser, "what", 0),
	}

	got := c.Classify("gibberish", memory)
	assert.False(t, got.RequiresTransfer)
}

func TestClassify_NoEscalationBelowStreak(t *testing.T) {
	c := NewIntentClassifier(WithEscalationStreak(3))

	memory := []domain.ConversationTurn{
		turn(domain.RoleUser, "hmm", 0),
	}

	got := c.Classify("gibberish", memory)
	assert.False(t, got.RequiresTransfer)
}

func TestClassify_EmptyMessageNeverEscalates(t *testing.T) {
	c := NewIntentClassifier(WithEscalationStreak(2))

	// Even with a trailing low-confidence streak that one more unclear turn
	// would complete, a blank message classifies as general with no transfer.
	memory := []domain.ConversationTurn{
		turn(domain.RoleUser, "hmm", 0),
	}

	for _, message := range []string{"", "   ", "\n\t"} {
		got := c.Classify(message, memory)
		assert.Equal(t, domain.IntentGeneral, got.Intent)
		assert.Zero(t, got.Confidence)
		assert.False(t, got.RequiresTransfer)
	}
}

func TestClassify_CustomKeywords(t *testing.T) {
	c := NewIntentClassifier(WithKeywords(map[domain.Intent][]string{
		domain.IntentTechnical: {"frobnicate"},
	}))

	got := c.Classify("please frobnicate the widget", nil)
	assert.Equal(t, domain.IntentTechnical, got.Intent)
	assert.InDelta(t, 1.0, got.Confidence, 1e-9)

	// Intents absent from a custom table never match.
	fallthru := c.Classify("my bill is wrong", nil)
	assert.Equal(t, domain.IntentGeneral, fallthru.Intent)
}
