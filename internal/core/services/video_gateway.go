package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driven"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
	"github.com/custodia-labs/ytpicker/internal/logger"
)

// Ensure VideoGateway implements the interface.
var _ driving.VideoGateway = (*VideoGateway)(nil)

// VideoCachePrefix namespaces video detail entries in the shared cache.
const VideoCachePrefix = "youtube_video_"

// VideoCacheKey returns the cache key holding the details of videoID.
func VideoCacheKey(videoID string) string {
	return VideoCachePrefix + videoID
}

// GatewayStatus is the outcome of gateway construction.
type GatewayStatus int

const (
	// GatewayInitialized means a token was obtained and remote calls are enabled.
	GatewayInitialized GatewayStatus = iota
	// GatewayDisabled means every operation short-circuits.
	GatewayDisabled
)

// String returns the status name.
func (s GatewayStatus) String() string {
	if s == GatewayInitialized {
		return "ready"
	}
	return "disabled"
}

// GatewayConfig holds the collaborators of a VideoGateway.
type GatewayConfig struct {
	Settings domain.YouTubeSettings
	Tokens   driving.TokenService
	Client   driven.VideoClient
	Cache    driven.Cache
}

// GatewayResult is returned by NewVideoGateway. Gateway is never nil.
type GatewayResult struct {
	Status  GatewayStatus
	Reason  error
	Gateway *VideoGateway
}

// VideoGateway searches one channel and memoizes video details forever.
type VideoGateway struct {
	settings domain.YouTubeSettings
	client   driven.VideoClient
	cache    driven.Cache
	reason   error
}

// NewVideoGateway builds a gateway, fetching a token up front to decide
// whether remote calls are possible. It never fails: problems are reported
// as a disabled result.
func NewVideoGateway(ctx context.Context, cfg GatewayConfig) GatewayResult {
	settings := cfg.Settings.WithDefaults()

	reason := checkGatewayConfig(cfg, settings)
	if reason == nil {
		if _, err := cfg.Tokens.GetValidAccessToken(ctx); err != nil {
			reason = err
		}
	}

	if reason != nil {
		logger.Error("youtube service disabled: %v", reason)
		return GatewayResult{
			Status:  GatewayDisabled,
			Reason:  reason,
			Gateway: &VideoGateway{settings: settings, reason: reason},
		}
	}

	logger.Debug("youtube service initialised for channel %s", settings.ChannelID)
	return GatewayResult{
		Status: GatewayInitialized,
		Gateway: &VideoGateway{
			settings: settings,
			client:   cfg.Client,
			cache:    cfg.Cache,
		},
	}
}

// DisabledGateway returns a gateway that answers every call as uninitialised.
func DisabledGateway(reason error) *VideoGateway {
	if reason == nil {
		reason = domain.ErrServiceNotInitialized
	}
	return &VideoGateway{reason: reason}
}

func checkGatewayConfig(cfg GatewayConfig, settings domain.YouTubeSettings) error {
	if cfg.Tokens == nil || cfg.Client == nil || cfg.Cache == nil {
		return domain.ErrServiceNotInitialized
	}

	var missing []string
	for _, name := range settings.Missing() {
		// Refresh token is checked by the token service; a cached token may suffice.
		if name != "refresh_token" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrInvalidSettings, strings.Join(missing, ", "))
	}
	return nil
}

// Ready returns true if the gateway initialised successfully.
func (g *VideoGateway) Ready() bool {
	return g.reason == nil
}

// Reason returns why the gateway is disabled.
func (g *VideoGateway) Reason() error {
	return g.reason
}

// SearchVideos searches the configured channel, preserving relevance order.
func (g *VideoGateway) SearchVideos(ctx context.Context, term string, maxResults int) domain.SearchResult {
	if !g.Ready() {
		return domain.SearchFailed(domain.ErrServiceNotInitialized.Error())
	}
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}

	videos, err := g.client.Search(ctx, driven.VideoSearch{
		Query:      term,
		ChannelID:  g.settings.ChannelID,
		MaxResults: maxResults,
	})
	if err != nil {
		logger.WithFields(logger.Fields{"term": term}).Errorf("youtube search failed: %v", err)
		return domain.SearchFailed(err.Error())
	}
	return domain.SearchResult{Videos: videos}
}

// GetVideoDetails returns the embeddable view of videoID, or nil when the id
// is empty, the video does not exist, or the lookup failed. Found and
// not-found results are cached without expiry; failures are not cached.
func (g *VideoGateway) GetVideoDetails(ctx context.Context, videoID string) *domain.VideoDetail {
	if videoID == "" || !g.Ready() {
		return nil
	}

	key := VideoCacheKey(videoID)
	if detail, ok := g.cachedDetail(ctx, key); ok {
		return detail
	}

	snippet, err := g.client.GetVideo(ctx, videoID)
	if err != nil {
		logger.WithFields(logger.Fields{"video_id": videoID}).Errorf("youtube video lookup failed: %v", err)
		return nil
	}

	var detail *domain.VideoDetail
	if snippet != nil {
		d := domain.NewVideoDetail(*snippet, g.settings.AppURL)
		detail = &d
	}

	// A nil detail encodes as JSON null: the negative entry.
	data, err := json.Marshal(detail)
	if err == nil {
		err = g.cache.Put(ctx, key, data, 0)
	}
	if err != nil {
		logger.Warn("caching video %s: %v", videoID, err)
	}
	return detail
}

func (g *VideoGateway) cachedDetail(ctx context.Context, key string) (*domain.VideoDetail, bool) {
	data, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("reading cached video %s: %v", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var detail *domain.VideoDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		logger.Warn("discarding unreadable cached video %s: %v", key, err)
		return nil, false
	}
	return detail, true
}

// GetVideoLabel returns "" for an empty id, the video title when found,
// and domain.VideoNotFoundLabel otherwise.
func (g *VideoGateway) GetVideoLabel(ctx context.Context, videoID string) string {
	if videoID == "" {
		return ""
	}
	if detail := g.GetVideoDetails(ctx, videoID); detail != nil {
		return detail.Title
	}
	return domain.VideoNotFoundLabel
}
