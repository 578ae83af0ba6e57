package mcp

import (
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Videos searches the channel and resolves video details.
	Videos driving.VideoGateway
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Videos == nil {
		return ErrMissingVideoGateway
	}
	return nil
}
