package tui

import (
	"errors"

	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
)

// ErrMissingCallService is returned when no call service is wired.
var ErrMissingCallService = errors.New("tui: call service is required")

// Ports holds the driving-side services the call simulator needs.
type Ports struct {
	// Calls owns the call lifecycle and per-turn processing.
	Calls driving.CallService
}

// Validate checks that required ports are present.
func (p *Ports) Validate() error {
	if p == nil || p.Calls == nil {
		return ErrMissingCallService
	}
	return nil
}
