package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driven"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
	"github.com/custodia-labs/ytpicker/internal/logger"
)

// Ensure TokenCache implements the interface.
var _ driving.TokenService = (*TokenCache)(nil)

// TokenCache keeps an OAuth2 access token in a Cache and refreshes it from
// the configured refresh token when the entry is missing or expired.
// Concurrent misses share a single exchange.
type TokenCache struct {
	cache        driven.Cache
	exchanger    driven.TokenExchanger
	cacheKey     string
	refreshToken string
	now          func() time.Time
	group        singleflight.Group
}

// NewTokenCache creates a token cache storing its entry under cacheKey.
func NewTokenCache(
	cache driven.Cache,
	exchanger driven.TokenExchanger,
	cacheKey, refreshToken string,
) *TokenCache {
	if cacheKey == "" {
		cacheKey = domain.DefaultCacheKey
	}
	return &TokenCache{
		cache:        cache,
		exchanger:    exchanger,
		cacheKey:     cacheKey,
		refreshToken: strings.TrimSpace(refreshToken),
		now:          time.Now,
	}
}

// GetValidAccessToken returns the cached token or refreshes it.
func (t *TokenCache) GetValidAccessToken(ctx context.Context) (*domain.OAuthToken, error) {
	if token, ok := t.cached(ctx); ok {
		logger.Debug("youtube access token served from cache key %q", t.cacheKey)
		return token, nil
	}

	if t.refreshToken == "" {
		logger.Warn("youtube refresh token not configured")
		return nil, &domain.AuthError{Kind: domain.AuthMissingRefreshToken}
	}

	// The flight is shared, so it must not die with the caller that started it.
	flightCtx := context.WithoutCancel(ctx)
	ch := t.group.DoChan(t.cacheKey, func() (any, error) {
		// A caller that finished just before us may already have stored a token.
		if token, ok := t.cached(flightCtx); ok {
			return token, nil
		}
		return t.refresh(flightCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Debug("youtube token refresh shared between concurrent callers")
		}
		return res.Val.(*domain.OAuthToken), nil
	}
}

// Invalidate drops the cached token so the next call refreshes.
func (t *TokenCache) Invalidate(ctx context.Context) error {
	return t.cache.Forget(ctx, t.cacheKey)
}

func (t *TokenCache) cached(ctx context.Context) (*domain.OAuthToken, bool) {
	data, ok, err := t.cache.Get(ctx, t.cacheKey)
	if err != nil {
		logger.Warn("reading cached youtube token: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var token domain.OAuthToken
	if err := json.Unmarshal(data, &token); err != nil || token.AccessToken == "" {
		logger.Warn("discarding unreadable cached youtube token under %q", t.cacheKey)
		return nil, false
	}
	if token.IsExpired(t.now()) {
		return nil, false
	}
	return &token, true
}

func (t *TokenCache) refresh(ctx context.Context) (*domain.OAuthToken, error) {
	logger.Section("YouTube token refresh")

	token, err := t.exchanger.Refresh(ctx, t.refreshToken)
	if err != nil {
		logger.Error("youtube token refresh failed: %v", err)
		return nil, &domain.AuthError{Kind: domain.AuthRefreshFailed, Message: err.Error(), Err: err}
	}
	if token == nil || token.AccessToken == "" {
		logger.Error("youtube token refresh returned no access token")
		return nil, &domain.AuthError{Kind: domain.AuthRefreshFailed, Message: "empty access token"}
	}
	if token.ObtainedAt.IsZero() {
		token.ObtainedAt = t.now()
	}

	ttl := token.CacheTTL()
	if ttl <= 0 {
		// Put treats a zero ttl as "forever".
		logger.Warn("youtube token lifetime %s too short to cache", token.Lifetime())
		return token, nil
	}

	data, err := json.Marshal(token)
	if err != nil {
		return nil, &domain.AuthError{Kind: domain.AuthRefreshFailed, Message: err.Error(), Err: err}
	}
	if err := t.cache.Put(ctx, t.cacheKey, data, ttl); err != nil {
		logger.Warn("caching youtube token: %v", err)
	}
	logger.Debug("youtube access token refreshed, cached for %s", ttl)
	return token, nil
}
