// Package tui provides the interactive terminal viewer for docview.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docview/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Viewer loads collections and changes documents.
	Viewer driving.ViewerService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(viewer driving.ViewerService) *Ports {
	return &Ports{Viewer: viewer}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Viewer == nil {
		return ErrMissingViewerService
	}
	return nil
}
