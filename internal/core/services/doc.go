// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// All collaborator I/O goes through driven ports; the only policy the
// services own themselves is bounded retry with exponential backoff.
package services
