package youtube

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driven"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
	"github.com/custodia-labs/ytpicker/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.VideoClient = (*Client)(nil)

var snippetPart = []string{"snippet"}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	endpoint   string
	httpClient *http.Client
	rateLimit  RateLimitConfig
}

// WithEndpoint overrides the API base URL, e.g. for tests.
func WithEndpoint(endpoint string) Option {
	return func(o *clientOptions) {
		o.endpoint = endpoint
	}
}

// WithHTTPClient sets the base client; its transport is wrapped with
// bearer-token authentication.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithRateLimit overrides DefaultRateLimit.
func WithRateLimit(cfg RateLimitConfig) Option {
	return func(o *clientOptions) {
		o.rateLimit = cfg
	}
}

// Client calls the YouTube Data API v3.
type Client struct {
	service *yt.Service
	tokens  driving.TokenService
	limiter *RateLimiter
}

// NewClient creates a client that authenticates every request through tokens.
// ctx is only used to construct the API service.
func NewClient(ctx context.Context, tokens driving.TokenService, opts ...Option) (*Client, error) {
	o := clientOptions{rateLimit: DefaultRateLimit}
	for _, opt := range opts {
		opt(&o)
	}

	base := o.httpClient
	if base == nil {
		base = http.DefaultClient
	}
	authed := &http.Client{
		Transport: NewTransport(tokens, base.Transport),
		Timeout:   base.Timeout,
	}

	serviceOpts := []option.ClientOption{option.WithHTTPClient(authed)}
	if o.endpoint != "" {
		serviceOpts = append(serviceOpts, option.WithEndpoint(o.endpoint))
	}

	service, err := yt.NewService(ctx, serviceOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}

	return &Client{
		service: service,
		tokens:  tokens,
		limiter: NewRateLimiter(o.rateLimit),
	}, nil
}

// Search runs search.list restricted to videos, in relevance order.
func (c *Client) Search(ctx context.Context, search driven.VideoSearch) ([]domain.VideoSummary, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := c.service.Search.List(snippetPart).
		Q(search.Query).
		Type("video").
		MaxResults(int64(search.MaxResults)).
		Context(ctx)
	if search.ChannelID != "" {
		call = call.ChannelId(search.ChannelID)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, c.handleError(ctx, "search", err)
	}

	videos := make([]domain.VideoSummary, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		title := ""
		if item.Snippet != nil {
			// search.list returns HTML-escaped titles; videos.list does not.
			title = html.UnescapeString(item.Snippet.Title)
		}
		videos = append(videos, domain.VideoSummary{ID: item.Id.VideoId, Title: title})
	}
	logger.Debug("youtube search %q returned %d videos", search.Query, len(videos))
	return videos, nil
}

// GetVideo runs videos.list for a single id. An empty item list yields (nil, nil).
func (c *Client) GetVideo(ctx context.Context, videoID string) (*domain.VideoSnippet, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Videos.List(snippetPart).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, c.handleError(ctx, "videos", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, nil //nolint:nilnil // not found is not an error
	}

	item := resp.Items[0]
	snippet := &domain.VideoSnippet{
		ID:           item.Id,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ThumbnailURL: thumbnailURL(item.Snippet.Thumbnails),
	}
	if snippet.ID == "" {
		snippet.ID = videoID
	}
	if item.Snippet.PublishedAt != "" {
		if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			snippet.PublishedAt = published
		} else {
			logger.Debug("unparseable publishedAt %q for video %s", item.Snippet.PublishedAt, videoID)
		}
	}
	return snippet, nil
}

// handleError maps API errors and updates client state: a 401 drops the
// cached token, a 429 opens a back-off window.
func (c *Client) handleError(ctx context.Context, op string, err error) error {
	wrapped := WrapError(err)

	switch {
	case IsUnauthorized(wrapped):
		if invErr := c.tokens.Invalidate(ctx); invErr != nil {
			logger.Warn("dropping cached youtube token: %v", invErr)
		}
	case IsRateLimited(wrapped):
		c.limiter.RecordRateLimitError(retryAfter(err))
	}

	return &domain.RemoteError{Op: op, Err: wrapped}
}

func thumbnailURL(thumbs *yt.ThumbnailDetails) string {
	if thumbs == nil {
		return ""
	}
	for _, t := range []*yt.Thumbnail{thumbs.High, thumbs.Medium, thumbs.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}
