package services

import (
	"strings"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/logger"
)

// Default classifier tuning. The floor marks a turn as low-confidence;
// the streak is the number of consecutive low-confidence user turns
// (including the current one) that triggers an escalation to a human.
const (
	DefaultConfidenceFloor  = 0.34
	DefaultEscalationStreak = 2
)

// IntentClassifier assigns an intent to each user message by keyword
// matching against a closed taxonomy.
type IntentClassifier struct {
	keywords map[domain.Intent][]string
	order    []domain.Intent
	floor    float64
	streak   int
}

// ClassifierOption configures an IntentClassifier.
type ClassifierOption func(*IntentClassifier)

// WithConfidenceFloor overrides the low-confidence threshold.
func WithConfidenceFloor(floor float64) ClassifierOption {
	return func(c *IntentClassifier) {
		if floor > 0 {
			c.floor = floor
		}
	}
}

// WithEscalationStreak overrides the consecutive low-confidence turn count
// that triggers a transfer.
func WithEscalationStreak(n int) ClassifierOption {
	return func(c *IntentClassifier) {
		if n > 0 {
			c.streak = n
		}
	}
}

// WithKeywords replaces the default keyword table. Intents absent from the
// table never match.
func WithKeywords(keywords map[domain.Intent][]string) ClassifierOption {
	return func(c *IntentClassifier) {
		if len(keywords) > 0 {
			c.keywords = keywords
		}
	}
}

// NewIntentClassifier creates a classifier with the default taxonomy.
func NewIntentClassifier(opts ...ClassifierOption) *IntentClassifier {
	c := &IntentClassifier{
		keywords: domain.DefaultKeywords(),
		order:    domain.Intents(),
		floor:    DefaultConfidenceFloor,
		streak:   DefaultEscalationStreak,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify scores the message against every intent's keyword list and
// returns the winner. Ties break on taxonomy declaration order, so the
// result is deterministic for a given message. The memory snapshot is
// only read, never mutated; the escalation decision is derived from it
// so the classifier itself stays stateless.
func (c *IntentClassifier) Classify(message string, memory []domain.ConversationTurn) domain.Classification {
	// An empty message carries no signal: general, zero confidence, and no
	// escalation regardless of the preceding streak.
	if strings.TrimSpace(message) == "" {
		return domain.Classification{Intent: domain.IntentGeneral}
	}

	lowered := strings.ToLower(message)

	best := domain.IntentGeneral
	bestMatched := 0
	bestConfidence := 0.0

	for _, intent := range c.order {
		words := c.keywords[intent]
		if len(words) == 0 {
			continue
		}
		matched := 0
		for _, kw := range words {
			if strings.Contains(lowered, kw) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		confidence := float64(matched) / float64(len(words))
		// Strictly-greater keeps the earliest declared intent on ties.
		if matched > bestMatched {
			best = intent
			bestMatched = matched
			bestConfidence = confidence
		}
	}

	result := domain.Classification{
		Intent:     best,
		Confidence: bestConfidence,
	}

	if best == domain.IntentTransfer {
		result.RequiresTransfer = true
		result.TransferReason = "user requested a human agent"
		return result
	}

	if bestConfidence < c.floor && c.lowConfidenceStreak(memory)+1 >= c.streak {
		result.RequiresTransfer = true
		result.TransferReason = "repeated low-confidence turns"
		logger.Info("Escalating after %d consecutive unclear turns", c.streak)
	}

	return result
}

// lowConfidenceStreak counts trailing user turns in memory whose recorded
// confidence fell below the floor. A confident user turn resets the streak.
func (c *IntentClassifier) lowConfidenceStreak(memory []domain.ConversationTurn) int {
	count := 0
	for i := len(memory) - 1; i >= 0; i-- {
		turn := memory[i]
		if turn.Role != domain.RoleUser {
			continue
		}
		if turn.Confidence >= c.floor {
			break
		}
		count++
	}
	return count
}
