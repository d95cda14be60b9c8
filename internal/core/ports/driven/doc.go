// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: document and chunk persistence
//   - CallStore: call record persistence
//   - VectorIndex: nearest-neighbour search over chunk embeddings
//   - EmbeddingService: text-to-vector collaborator
//   - LLMService: response generation. The canned adapter keeps the engine
//     fully offline when no hosted model is configured.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
