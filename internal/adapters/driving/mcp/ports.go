package mcp

import (
	"github.com/custodia-labs/docview/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Viewer reads and writes documents of the configured collections.
	Viewer driving.ViewerService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Viewer == nil {
		return ErrMissingViewerService
	}
	return nil
}
