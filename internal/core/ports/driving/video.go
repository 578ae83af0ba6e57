package driving

import (
	"context"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// VideoGateway is the picker-facing view of the video platform.
// None of its methods return errors; failures are folded into the result.
type VideoGateway interface {
	// SearchVideos searches the configured channel. maxResults <= 0 means the default.
	SearchVideos(ctx context.Context, term string, maxResults int) domain.SearchResult

	// GetVideoDetails returns the embeddable view of a video, or nil.
	GetVideoDetails(ctx context.Context, videoID string) *domain.VideoDetail

	// GetVideoLabel returns a display label for a stored video id.
	GetVideoLabel(ctx context.Context, videoID string) string

	// Ready returns true if the gateway initialised successfully.
	Ready() bool

	// Reason returns why the gateway is disabled, or nil.
	Reason() error
}
