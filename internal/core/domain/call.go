package domain

import "time"

// CallState is the lifecycle state of a call.
type CallState string

// Call lifecycle: INITIATED -> RINGING -> CONNECTED -> ACTIVE -> {ENDED|FAILED}.
// ENDED and FAILED are terminal.
const (
	CallInitiated CallState = "initiated"
	CallRinging   CallState = "ringing"
	CallConnected CallState = "connected"
	CallActive    CallState = "active"
	CallEnded     CallState = "ended"
	CallFailed    CallState = "failed"
)

// Terminal reports whether no transition leaves this state.
func (s CallState) Terminal() bool {
	return s == CallEnded || s == CallFailed
}

// transitions is the closed set of legal state changes. FAILED is reachable
// from every non-terminal state because any unhandled fault mid-turn must
// land the call there rather than silently continuing.
var transitions = map[CallState][]CallState{
	CallInitiated: {CallRinging, CallFailed},
	CallRinging:   {CallConnected, CallFailed},
	CallConnected: {CallActive, CallFailed},
	CallActive:    {CallEnded, CallFailed},
	CallEnded:     {},
	CallFailed:    {},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s CallState) CanTransitionTo(next CallState) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Role identifies the speaker of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// ConversationTurn is one utterance within a call. Append-only; belongs to
// exactly one call. User turns carry the classification assigned when the
// turn was processed.
type ConversationTurn struct {
	Role      Role
	Text      string
	Timestamp time.Time

	// Intent and Confidence are set on user turns only.
	Intent     Intent
	Confidence float64
}

// CallSummary is computed when a call ends.
type CallSummary struct {
	// DominantIntent is the most frequent intent across the call's user
	// turns; ties break on taxonomy declaration order.
	DominantIntent Intent

	// TurnCount is the number of user/agent exchanges.
	TurnCount int

	// Duration is the time from connection to termination.
	Duration time.Duration
}

// Call is an independently owned unit of conversational state. Calls are
// never destroyed; terminal calls are retained for history queries.
type Call struct {
	ID        string
	UserName  string
	UserPhone string
	Topic     string
	State     CallState

	// CreatedAt is when the call was initiated.
	CreatedAt time.Time

	// StartedAt is when the call reached CONNECTED; zero before then.
	StartedAt time.Time

	// EndedAt is set when the call reaches a terminal state.
	EndedAt *time.Time

	// MessageCount equals the number of user-role turns recorded.
	MessageCount int

	// Transcript is the full append-only turn log. The bounded conversation
	// memory used for LLM context is a separate view owned by the call service.
	Transcript []ConversationTurn

	// Summary is computed at EndCall time; nil while the call is live.
	Summary *CallSummary
}
