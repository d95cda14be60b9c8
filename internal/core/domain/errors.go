package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a referenced call or document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed input (empty title, empty content,
	// bad phone number). The transport layer maps this to a 400-class response.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCallState indicates an operation was attempted while the call
	// is in a terminal or otherwise ineligible state.
	ErrInvalidCallState = errors.New("invalid call state")

	// ErrInvalidConfiguration indicates a programmer or deployment error
	// (overlap >= chunk size, non-positive memory capacity). Fail fast.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidArgument indicates a programmer error in an operation argument
	// (non-positive top-k). Not user-recoverable.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDegenerateVector indicates a zero vector that cannot be L2-normalized
	// and therefore has no defined cosine similarity.
	ErrDegenerateVector = errors.New("degenerate vector")

	// ErrEmbeddingUnavailable indicates the embedding collaborator is down.
	// Retried locally with bounded backoff before surfacing.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationUnavailable indicates the LLM collaborator is down or
	// timed out. Retried locally; callers fall back to a degraded response.
	ErrGenerationUnavailable = errors.New("generation service unavailable")
)
