package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// SearchInput is the input schema for the youtube_search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"search term matched against videos of the configured channel"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of videos to return (default 10)"`
}

// SearchOutput is the output schema for the youtube_search tool.
type SearchOutput struct {
	Videos []VideoSummaryOutput `json:"videos"`
	Count  int                  `json:"count"`
}

// VideoSummaryOutput is one search hit, in relevance order.
type VideoSummaryOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// VideoInput is the input schema for the youtube_video tool.
type VideoInput struct {
	VideoID string `json:"video_id" jsonschema:"the YouTube video id"`
}

// VideoOutput is the output schema for the youtube_video tool.
type VideoOutput struct {
	Found bool                `json:"found"`
	Label string              `json:"label"`
	Video *domain.VideoDetail `json:"video,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "youtube_search",
		Description: "Search videos of the configured YouTube channel",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "youtube_video",
		Description: "Get details and embed code for a YouTube video",
	}, s.handleVideo)
}

// handleSearch handles the youtube_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, SearchOutput{}, ErrEmptyQuery
	}

	result := s.ports.Videos.SearchVideos(ctx, query, input.MaxResults)
	if result.Failed() {
		return nil, SearchOutput{}, errors.New(result.Error)
	}

	output := SearchOutput{
		Videos: make([]VideoSummaryOutput, 0, len(result.Videos)),
	}
	seen := make(map[string]bool, len(result.Videos))
	for _, v := range result.Videos {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		output.Videos = append(output.Videos, VideoSummaryOutput{ID: v.ID, Title: v.Title})
	}
	output.Count = len(output.Videos)

	return nil, output, nil
}

// handleVideo handles the youtube_video tool invocation.
func (s *Server) handleVideo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VideoInput,
) (*mcp.CallToolResult, VideoOutput, error) {
	id := strings.TrimSpace(input.VideoID)
	if id == "" {
		return nil, VideoOutput{}, ErrEmptyVideoID
	}

	detail := s.ports.Videos.GetVideoDetails(ctx, id)
	if detail == nil {
		return nil, VideoOutput{Label: domain.VideoNotFoundLabel}, nil
	}
	return nil, VideoOutput{Found: true, Label: detail.Title, Video: detail}, nil
}
