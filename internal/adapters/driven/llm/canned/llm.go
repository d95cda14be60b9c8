// Package canned provides an offline LLM adapter that answers from a fixed
// per-intent response table, optionally quoting the top retrieved chunk.
// It pairs with the local embedder to run the engine with no network access.
package canned

import (
	"context"
	"fmt"
	"strings"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// responses maps each intent to its scripted reply.
var responses = map[domain.Intent]string{
	domain.IntentBilling:   "I can help you with billing questions. We offer flexible payment options and refunds within 30 days.",
	domain.IntentTechnical: "For technical issues, please make sure you are running the latest version. I can walk you through some troubleshooting steps.",
	domain.IntentAccount:   "For account security, please verify your identity through our secure portal and I can help from there.",
	domain.IntentSupport:   "Our support team is available 24/7. How can I assist you further?",
	domain.IntentCancel:    "I'm sorry to hear you want to cancel. I can walk you through the cancellation steps, or help resolve whatever prompted this.",
	domain.IntentTransfer:  "Of course, let me connect you with a human agent. Please hold for a moment.",
	domain.IntentGeneral:   "Thank you for your message. How can I assist you today?",
}

// LLMService answers every turn from the response table.
type LLMService struct{}

// NewLLMService creates a canned LLM service.
func NewLLMService() *LLMService {
	return &LLMService{}
}

// Generate picks the scripted response for the turn's intent. When retrieval
// produced context, the best chunk is appended so answers still surface
// knowledge-base content.
func (s *LLMService) Generate(_ context.Context, req driven.GenerationRequest) (string, error) {
	response, ok := responses[req.Intent]
	if !ok {
		response = responses[domain.IntentGeneral]
	}

	if len(req.Context) > 0 {
		top := req.Context[0]
		response = fmt.Sprintf("%s Here's what I found in %q: %s",
			response, top.DocumentTitle, firstSentence(top.Text))
	}

	return response, nil
}

// ModelName returns the name of the model being used.
func (s *LLMService) ModelName() string {
	return "canned"
}

// Ping always succeeds; there is no collaborator to reach.
func (s *LLMService) Ping(context.Context) error {
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}

// firstSentence trims the chunk to its first sentence, capped at 200 runes,
// so spoken responses stay short.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		text = text[:i+1]
	}
	runes := []rune(text)
	if len(runes) > 200 {
		text = string(runes[:200]) + "..."
	}
	return text
}
