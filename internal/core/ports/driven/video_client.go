package driven

import (
	"context"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// VideoSearch describes a single channel-scoped search.
type VideoSearch struct {
	Query      string
	ChannelID  string
	MaxResults int
}

// VideoClient is the remote video platform API.
// Implementations authenticate every call through a TokenService.
type VideoClient interface {
	// Search returns hits in the platform's relevance order.
	Search(ctx context.Context, search VideoSearch) ([]domain.VideoSummary, error)

	// GetVideo fetches a single video. It returns (nil, nil) when the
	// platform answers with an empty list.
	GetVideo(ctx context.Context, videoID string) (*domain.VideoSnippet, error)
}
