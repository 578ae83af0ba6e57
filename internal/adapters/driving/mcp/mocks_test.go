package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// mockGateway is a mock implementation of driving.VideoGateway.
type mockGateway struct {
	ready   bool
	reason  error
	result  domain.SearchResult
	details map[string]*domain.VideoDetail

	lastTerm string
	lastMax  int
	searches int
}

func (m *mockGateway) SearchVideos(_ context.Context, term string, maxResults int) domain.SearchResult {
	m.searches++
	m.lastTerm = term
	m.lastMax = maxResults
	return m.result
}

func (m *mockGateway) GetVideoDetails(_ context.Context, id string) *domain.VideoDetail {
	return m.details[id]
}

func (m *mockGateway) GetVideoLabel(_ context.Context, id string) string {
	if d := m.details[id]; d != nil {
		return d.Title
	}
	return domain.VideoNotFoundLabel
}

func (m *mockGateway) Ready() bool { return m.ready }

func (m *mockGateway) Reason() error { return m.reason }

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
