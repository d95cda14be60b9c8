package mcpsrv

import (
	"errors"

	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
)

// ErrMissingKnowledgeService is returned when no knowledge service is wired.
var ErrMissingKnowledgeService = errors.New("mcp: knowledge service is required")

// Ports aggregates the driving port interfaces the MCP server exposes.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Knowledge provides knowledge-base search and document listing.
	Knowledge driving.KnowledgeService

	// Calls provides read access to the call ledger. Optional.
	Calls driving.CallService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Knowledge == nil {
		return ErrMissingKnowledgeService
	}
	return nil
}
