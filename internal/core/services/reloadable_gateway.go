package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
)

// Ensure ReloadableGateway implements the interface.
var _ driving.VideoGateway = (*ReloadableGateway)(nil)

// GatewayBuilder constructs a gateway from the current configuration.
type GatewayBuilder func(ctx context.Context) GatewayResult

// ReloadableGateway delegates to a VideoGateway that is built on first use
// and rebuilt on Reload, e.g. after the config file changes.
type ReloadableGateway struct {
	build   GatewayBuilder
	mu      sync.Mutex
	current atomic.Pointer[VideoGateway]
}

// NewReloadableGateway creates a lazily initialised gateway.
func NewReloadableGateway(build GatewayBuilder) *ReloadableGateway {
	return &ReloadableGateway{build: build}
}

// Reload rebuilds the gateway and swaps it in.
func (r *ReloadableGateway) Reload(ctx context.Context) GatewayResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := r.construct(ctx)
	r.current.Store(result.Gateway)
	return result
}

func (r *ReloadableGateway) construct(ctx context.Context) GatewayResult {
	result := r.build(ctx)
	if result.Gateway == nil {
		reason := result.Reason
		if reason == nil {
			reason = domain.ErrServiceNotInitialized
		}
		result = GatewayResult{Status: GatewayDisabled, Reason: reason, Gateway: DisabledGateway(reason)}
	}
	return result
}

func (r *ReloadableGateway) gateway(ctx context.Context) *VideoGateway {
	if g := r.current.Load(); g != nil {
		return g
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if g := r.current.Load(); g != nil {
		return g
	}
	// The gateway outlives the call that happens to build it.
	g := r.construct(context.WithoutCancel(ctx)).Gateway
	r.current.Store(g)
	return g
}

// SearchVideos delegates to the current gateway.
func (r *ReloadableGateway) SearchVideos(ctx context.Context, term string, maxResults int) domain.SearchResult {
	return r.gateway(ctx).SearchVideos(ctx, term, maxResults)
}

// GetVideoDetails delegates to the current gateway.
func (r *ReloadableGateway) GetVideoDetails(ctx context.Context, videoID string) *domain.VideoDetail {
	return r.gateway(ctx).GetVideoDetails(ctx, videoID)
}

// GetVideoLabel delegates to the current gateway.
func (r *ReloadableGateway) GetVideoLabel(ctx context.Context, videoID string) string {
	return r.gateway(ctx).GetVideoLabel(ctx, videoID)
}

// Ready initialises the gateway if needed and reports its state.
func (r *ReloadableGateway) Ready() bool {
	return r.gateway(context.Background()).Ready()
}

// Reason initialises the gateway if needed and reports why it is disabled.
func (r *ReloadableGateway) Reason() error {
	return r.gateway(context.Background()).Reason()
}
