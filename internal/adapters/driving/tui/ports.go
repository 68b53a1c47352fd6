// Package tui provides an interactive terminal user interface for mnemo.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Collection is the loaded-document surface the browser renders.
	Collection driving.CollectionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Collection == nil {
		return ErrMissingCollectionService
	}
	return nil
}
