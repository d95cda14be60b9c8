package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
	"github.com/switchboard-labs/switchboard/internal/logger"
)

// DefaultRetrievalTopK is the number of knowledge chunks retrieved per turn.
const DefaultRetrievalTopK = 3

// fallbackResponse is spoken when the language model stays unreachable after
// retries. The call remains active so the user can try again.
const fallbackResponse = "I'm sorry, I'm having trouble processing that right now. " +
	"Could you please repeat your question?"

// agentSystemPrompt frames every generation request.
const agentSystemPrompt = "You are a helpful customer support agent on a phone call. " +
	"Answer using only the provided knowledge context. Keep responses short and " +
	"conversational, as they will be spoken aloud. If the context does not cover " +
	"the question, say so and offer to transfer the caller to a human agent."

// Ensure CallService implements the interface.
var _ driving.CallService = (*CallService)(nil)

// callRuntime is the per-call mutable state that never leaves the service:
// the turn lock and the bounded conversation memory.
type callRuntime struct {
	mu     sync.Mutex
	memory *domain.ConversationMemory
}

// CallService owns the call lifecycle. Each call gets its own lock, so turns
// within a call are serialized while distinct calls proceed in parallel.
type CallService struct {
	callStore  driven.CallStore
	knowledge  driving.KnowledgeService
	llmService driven.LLMService
	classifier *IntentClassifier
	retry      RetryPolicy
	topK       int
	memoryCap  int

	mu       sync.Mutex
	runtimes map[string]*callRuntime
}

// CallOption configures a CallService.
type CallOption func(*CallService)

// WithRetrievalTopK overrides the per-turn retrieval depth.
func WithRetrievalTopK(k int) CallOption {
	return func(s *CallService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithMemoryCapacity overrides the bounded conversation memory size.
func WithMemoryCapacity(n int) CallOption {
	return func(s *CallService) {
		if n > 0 {
			s.memoryCap = n
		}
	}
}

// WithCallRetryPolicy overrides the generation retry policy.
func WithCallRetryPolicy(p RetryPolicy) CallOption {
	return func(s *CallService) {
		s.retry = p
	}
}

// WithClassifier overrides the default intent classifier.
func WithClassifier(c *IntentClassifier) CallOption {
	return func(s *CallService) {
		if c != nil {
			s.classifier = c
		}
	}
}

// NewCallService creates a new call service.
func NewCallService(
	callStore driven.CallStore,
	knowledge driving.KnowledgeService,
	llmService driven.LLMService,
	opts ...CallOption,
) *CallService {
	s := &CallService{
		callStore:  callStore,
		knowledge:  knowledge,
		llmService: llmService,
		classifier: NewIntentClassifier(),
		retry:      DefaultRetryPolicy(),
		topK:       DefaultRetrievalTopK,
		memoryCap:  domain.DefaultMemoryCapacity,
		runtimes:   make(map[string]*callRuntime),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InitiateCall creates a call and drives it through the connection sequence
// to ACTIVE, recording the agent greeting as the first transcript turn.
func (s *CallService) InitiateCall(ctx context.Context, req driving.CallRequest) (*domain.Call, error) {
	name := strings.TrimSpace(req.UserName)
	if name == "" {
		return nil, fmt.Errorf("user name is required: %w", domain.ErrValidation)
	}

	now := time.Now().UTC()
	call := &domain.Call{
		ID:        uuid.New().String(),
		UserName:  name,
		UserPhone: strings.TrimSpace(req.UserPhone),
		Topic:     strings.TrimSpace(req.Topic),
		State:     domain.CallInitiated,
		CreatedAt: now,
	}

	logger.Section("Call Initiation")
	logger.Debug("Call %s for %s (topic: %q)", call.ID, call.UserName, call.Topic)

	// The simulated telephony leg connects immediately, so the call walks
	// the full sequence at initiation time.
	for _, next := range []domain.CallState{domain.CallRinging, domain.CallConnected, domain.CallActive} {
		if err := transition(call, next); err != nil {
			return nil, err
		}
		if next == domain.CallConnected {
			call.StartedAt = time.Now().UTC()
		}
	}

	greeting := domain.ConversationTurn{
		Role:      domain.RoleAgent,
		Text:      buildGreeting(call.UserName, call.Topic),
		Timestamp: time.Now().UTC(),
	}
	call.Transcript = append(call.Transcript, greeting)

	rt := &callRuntime{memory: domain.NewConversationMemory(s.memoryCap)}
	rt.memory.Append(greeting)

	if err := s.callStore.Save(ctx, call); err != nil {
		return nil, fmt.Errorf("save call: %w", err)
	}

	s.mu.Lock()
	s.runtimes[call.ID] = rt
	s.mu.Unlock()

	logger.Info("Call %s active", call.ID)
	return call, nil
}

// ProcessMessage runs one turn: classify, retrieve, generate, record.
func (s *CallService) ProcessMessage(ctx context.Context, callID, text string) (*driving.TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is required: %w", domain.ErrValidation)
	}

	rt, err := s.runtime(ctx, callID)
	if err != nil {
		return nil, err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	call, err := s.callStore.Get(ctx, callID)
	if err != nil {
		return nil, err
	}
	if call.State != domain.CallActive {
		return nil, fmt.Errorf("call %s is %s, not active: %w",
			callID, call.State, domain.ErrInvalidCallState)
	}

	logger.Section("Turn Processing")
	logger.Debug("Call %s: %q", callID, text)

	snapshot := rt.memory.Snapshot()
	classification := s.classifier.Classify(text, snapshot)
	logger.Info("Intent: %s (confidence %.2f)", classification.Intent, classification.Confidence)

	degraded := false

	retrieved, err := s.knowledge.RetrieveRelevant(ctx, text, s.topK)
	if err != nil {
		if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
			return nil, s.failCall(ctx, call, fmt.Errorf("retrieve context: %w", err))
		}
		// Answer from the model alone rather than dropping the call.
		logger.Warn("Retrieval degraded for call %s: %v", callID, err)
		retrieved = nil
		degraded = true
	}
	logger.Debug("Retrieved %d chunks", len(retrieved))

	response, genErr := s.generate(ctx, driven.GenerationRequest{
		SystemPrompt: agentSystemPrompt,
		UserMessage:  text,
		Intent:       classification.Intent,
		Context:      retrieved,
		Memory:       snapshot,
	})
	if genErr != nil {
		if !errors.Is(genErr, domain.ErrGenerationUnavailable) {
			return nil, s.failCall(ctx, call, fmt.Errorf("generate response: %w", genErr))
		}
		logger.Warn("Generation degraded for call %s: %v", callID, genErr)
		response = fallbackResponse
		degraded = true
	}

	now := time.Now().UTC()
	userTurn := domain.ConversationTurn{
		Role:       domain.RoleUser,
		Text:       text,
		Timestamp:  now,
		Intent:     classification.Intent,
		Confidence: classification.Confidence,
	}
	agentTurn := domain.ConversationTurn{
		Role:      domain.RoleAgent,
		Text:      response,
		Timestamp: now,
	}

	call.Transcript = append(call.Transcript, userTurn, agentTurn)
	call.MessageCount++

	if err := s.callStore.Save(ctx, call); err != nil {
		return nil, s.failCall(ctx, call, fmt.Errorf("save call: %w", err))
	}

	// Memory is updated only after the turn fully succeeded, so a failed
	// turn leaves no trace in the context window.
	rt.memory.Append(userTurn)
	rt.memory.Append(agentTurn)

	return &driving.TurnResult{
		CallID:           callID,
		AgentResponse:    response,
		Intent:           classification.Intent,
		Confidence:       classification.Confidence,
		RequiresTransfer: classification.RequiresTransfer,
		TransferReason:   classification.TransferReason,
		Degraded:         degraded,
		Retrieved:        retrieved,
		Timestamp:        now,
	}, nil
}

// EndCall transitions the call to ENDED and computes its summary. Taking the
// per-call lock means any in-flight turn completes first.
func (s *CallService) EndCall(ctx context.Context, callID string) (*domain.Call, error) {
	rt, err := s.runtime(ctx, callID)
	if err != nil {
		return nil, err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	call, err := s.callStore.Get(ctx, callID)
	if err != nil {
		return nil, err
	}

	if err := transition(call, domain.CallEnded); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	call.EndedAt = &now
	call.Summary = summarize(call, now)

	if err := s.callStore.Save(ctx, call); err != nil {
		return nil, fmt.Errorf("save call: %w", err)
	}

	s.mu.Lock()
	delete(s.runtimes, callID)
	s.mu.Unlock()

	logger.Info("Call %s ended after %d messages", callID, call.MessageCount)
	return call, nil
}

// GetCall retrieves a call by ID.
func (s *CallService) GetCall(ctx context.Context, callID string) (*domain.Call, error) {
	return s.callStore.Get(ctx, callID)
}

// GetHistory returns the full transcript and summary of a call.
func (s *CallService) GetHistory(ctx context.Context, callID string) (*driving.CallHistory, error) {
	call, err := s.callStore.Get(ctx, callID)
	if err != nil {
		return nil, err
	}
	return &driving.CallHistory{
		Call:    *call,
		Turns:   call.Transcript,
		Summary: call.Summary,
	}, nil
}

// ActiveCalls returns all calls not in a terminal state.
func (s *CallService) ActiveCalls(ctx context.Context) ([]domain.Call, error) {
	return s.callStore.ListActive(ctx)
}

// runtime looks up the per-call runtime, rebuilding it from the stored
// transcript after a restart.
func (s *CallService) runtime(ctx context.Context, callID string) (*callRuntime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rt, ok := s.runtimes[callID]; ok {
		return rt, nil
	}

	call, err := s.callStore.Get(ctx, callID)
	if err != nil {
		return nil, err
	}

	rt := &callRuntime{memory: domain.NewConversationMemory(s.memoryCap)}
	for _, turn := range call.Transcript {
		rt.memory.Append(turn)
	}
	s.runtimes[callID] = rt
	return rt, nil
}

// generate calls the language model with the configured retry policy.
func (s *CallService) generate(ctx context.Context, req driven.GenerationRequest) (string, error) {
	var response string
	err := withRetry(ctx, s.retry, "generate", func() error {
		var genErr error
		response, genErr = s.llmService.Generate(ctx, req)
		return genErr
	})
	return response, err
}

// failCall moves the call to FAILED after an internal fault. The original
// fault is returned; the state change is best effort.
func (s *CallService) failCall(ctx context.Context, call *domain.Call, cause error) error {
	logger.Error("Call %s failed: %v", call.ID, cause)

	if call.State.CanTransitionTo(domain.CallFailed) {
		call.State = domain.CallFailed
		now := time.Now().UTC()
		call.EndedAt = &now
		if saveErr := s.callStore.Save(ctx, call); saveErr != nil {
			logger.Error("Recording failure for call %s: %v", call.ID, saveErr)
		}
	}

	s.mu.Lock()
	delete(s.runtimes, call.ID)
	s.mu.Unlock()

	return cause
}

// transition applies a state change, failing ErrInvalidCallState on an
// illegal edge.
func transition(call *domain.Call, next domain.CallState) error {
	if !call.State.CanTransitionTo(next) {
		return fmt.Errorf("cannot transition call %s from %s to %s: %w",
			call.ID, call.State, next, domain.ErrInvalidCallState)
	}
	call.State = next
	return nil
}

// summarize computes the end-of-call summary. The dominant intent is the most
// frequent across user turns, ties breaking on taxonomy declaration order.
func summarize(call *domain.Call, endedAt time.Time) *domain.CallSummary {
	counts := make(map[domain.Intent]int)
	for _, turn := range call.Transcript {
		if turn.Role == domain.RoleUser {
			counts[turn.Intent]++
		}
	}

	dominant := domain.IntentGeneral
	best := 0
	for _, intent := range domain.Intents() {
		if counts[intent] > best {
			dominant = intent
			best = counts[intent]
		}
	}

	var duration time.Duration
	if !call.StartedAt.IsZero() {
		duration = endedAt.Sub(call.StartedAt)
	}

	return &domain.CallSummary{
		DominantIntent: dominant,
		TurnCount:      call.MessageCount,
		Duration:       duration,
	}
}

// buildGreeting composes the agent's opening line.
func buildGreeting(name, topic string) string {
	if topic != "" {
		return fmt.Sprintf("Hello %s! Thank you for calling. I understand you're calling about %s. How can I help you today?", name, topic)
	}
	return fmt.Sprintf("Hello %s! Thank you for calling. How can I help you today?", name)
}
