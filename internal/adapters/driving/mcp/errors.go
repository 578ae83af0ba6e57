// Package mcp provides an MCP (Model Context Protocol) server adapter for ytpicker.
// It lets assistants search the configured channel and resolve video details.
package mcp

import "errors"

var (
	// ErrMissingVideoGateway is returned when the video gateway is not provided.
	ErrMissingVideoGateway = errors.New("mcp: video gateway is required")

	// ErrEmptyQuery is returned by youtube_search for a blank query.
	ErrEmptyQuery = errors.New("mcp: query is required")

	// ErrEmptyVideoID is returned by youtube_video for a blank id.
	ErrEmptyVideoID = errors.New("mcp: video_id is required")
)
