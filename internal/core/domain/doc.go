// Package domain defines the core business entities for Switchboard.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A knowledge-base entry
//   - Chunk: The retrieval unit derived from a document
//   - Call: One simulated phone interaction and its state machine
//   - ConversationTurn / ConversationMemory: the bounded turn log
//   - Intent / Classification: the closed caller-intent taxonomy
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
