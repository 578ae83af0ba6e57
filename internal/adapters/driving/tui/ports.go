// Package tui provides the interactive terminal video picker.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Videos searches the channel and resolves picked videos.
	Videos driving.VideoGateway
}

// NewPorts creates a new Ports aggregate.
func NewPorts(videos driving.VideoGateway) *Ports {
	return &Ports{Videos: videos}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Videos == nil {
		return ErrMissingVideoGateway
	}
	return nil
}
