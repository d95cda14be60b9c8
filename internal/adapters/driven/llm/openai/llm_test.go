package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
)

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestGenerate(t *testing.T) {
	var captured chatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  Refunds take 5 business days.  "}},
			},
		})
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := svc.Generate(context.Background(), driven.GenerationRequest{
		SystemPrompt: "You are a support agent.",
		UserMessage:  "where is my refund",
		Intent:       domain.IntentBilling,
		Context: []domain.RetrievalResult{
			{DocumentTitle: "Billing FAQ", Category: "billing", Text: "Refunds take 5 business days."},
		},
		Memory: []domain.ConversationTurn{
			{Role: domain.RoleAgent, Text: "Hello!"},
			{Role: domain.RoleUser, Text: "hi"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Refunds take 5 business days.", resp)

	// system + 2 memory turns + the user message
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "Billing FAQ")
	assert.Equal(t, "assistant", captured.Messages[1].Role)
	assert.Equal(t, "user", captured.Messages[2].Role)
	assert.Equal(t, "where is my refund", captured.Messages[3].Content)
}

func TestGenerate_ServerErrorMapsToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "try again later", "type": "server_error"},
		})
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), driven.GenerationRequest{UserMessage: "hi"})
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}

func TestGenerate_ConnectionRefusedMapsToUnavailable(t *testing.T) {
	svc, err := NewLLMService(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), driven.GenerationRequest{UserMessage: "hi"})
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}

func TestGenerate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), driven.GenerationRequest{UserMessage: "hi"})
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}

func TestBuildMessages_NoContext(t *testing.T) {
	msgs := buildMessages(driven.GenerationRequest{
		SystemPrompt: "prompt",
		UserMessage:  "question",
	})
	require.Len(t, msgs, 2)
	assert.Equal(t, "prompt", msgs[0].Content)
	assert.NotContains(t, msgs[0].Content, "Knowledge base context")
}
