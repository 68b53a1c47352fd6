package mcp

import (
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Collection is the loaded-document surface all tools operate on.
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
