package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

func storeToken(t *testing.T, cache *recordingCache, key string, token domain.OAuthToken, ttl time.Duration) {
	t.Helper()
	data, err := json.Marshal(token)
	require.NoError(t, err)
	require.NoError(t, cache.Cache.Put(context.Background(), key, data, ttl))
}

func TestTokenCache_CachedTokenReturnedWithoutExchange(t *testing.T) {
	cache := newRecordingCache()
	exchanger := &mockExchanger{}
	storeToken(t, cache, domain.DefaultCacheKey, domain.OAuthToken{
		AccessToken: "cached-token",
		ExpiresIn:   3600,
		ObtainedAt:  time.Now(),
	}, time.Hour)

	tc := NewTokenCache(cache, exchanger, "", "refresh")
	token, err := tc.GetValidAccessToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "cached-token", token.AccessToken)
	assert.Equal(t, int32(0), exchanger.refreshCalls.Load())
	assert.Empty(t, cache.Puts(), "a cache hit must not write")
}

func TestTokenCache_MissRefreshesOnceWithSafetyMargin(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn int64
		ttl       time.Duration
	}{
		{name: "declared lifetime", expiresIn: 3600, ttl: 3540 * time.Second},
		{name: "missing lifetime defaults to 3599", expiresIn: 0, ttl: 3539 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newRecordingCache()
			exchanger := &mockExchanger{token: &domain.OAuthToken{
				AccessToken: "fresh",
				ExpiresIn:   tt.expiresIn,
			}}

			tc := NewTokenCache(cache, exchanger, "my_key", "refresh-123")
			token, err := tc.GetValidAccessToken(context.Background())

			require.NoError(t, err)
			assert.Equal(t, "fresh", token.AccessToken)
			assert.False(t, token.ObtainedAt.IsZero())
			assert.Equal(t, int32(1), exchanger.refreshCalls.Load())
			assert.Equal(t, "refresh-123", exchanger.lastRefresh.Load())

			puts := cache.Puts()
			require.Len(t, puts, 1)
			assert.Equal(t, "my_key", puts[0].key)
			assert.Equal(t, tt.ttl, puts[0].ttl)

			// Second call is served from the cache.
			_, err = tc.GetValidAccessToken(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int32(1), exchanger.refreshCalls.Load())
		})
	}
}

func TestTokenCache_MissingRefreshToken(t *testing.T) {
	cache := newRecordingCache()
	exchanger := &mockExchanger{}

	tc := NewTokenCache(cache, exchanger, "", "  ")
	token, err := tc.GetValidAccessToken(context.Background())

	assert.Nil(t, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingRefreshToken)

	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domain.AuthMissingRefreshToken, authErr.Kind)
	assert.Equal(t, int32(0), exchanger.refreshCalls.Load())
}

func TestTokenCache_RefreshFailure(t *testing.T) {
	cache := newRecordingCache()
	exchanger := &mockExchanger{refreshErr: errors.New("invalid_grant")}

	tc := NewTokenCache(cache, exchanger, "", "revoked")
	token, err := tc.GetValidAccessToken(context.Background())

	assert.Nil(t, token)
	assert.ErrorIs(t, err, domain.ErrRefreshFailed)
	assert.Contains(t, err.Error(), "invalid_grant")
	assert.Empty(t, cache.Puts())
}

func TestTokenCache_CorruptEntryTreatedAsMiss(t *testing.T) {
	cache := newRecordingCache()
	require.NoError(t, cache.Cache.Put(context.Background(), domain.DefaultCacheKey, []byte("{not json"), time.Hour))
	exchanger := &mockExchanger{token: &domain.OAuthToken{AccessToken: "fresh", ExpiresIn: 3600}}

	tc := NewTokenCache(cache, exchanger, "", "refresh")
	token, err := tc.GetValidAccessToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fresh", token.AccessToken)
	assert.Equal(t, int32(1), exchanger.refreshCalls.Load())
}

func TestTokenCache_CacheReadErrorFallsBackToRefresh(t *testing.T) {
	cache := newRecordingCache()
	cache.getErr = errors.New("disk I/O error")
	exchanger := &mockExchanger{token: &domain.OAuthToken{AccessToken: "fresh", ExpiresIn: 3600}}

	tc := NewTokenCache(cache, exchanger, "", "refresh")
	token, err := tc.GetValidAccessToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fresh", token.AccessToken)
}

func TestTokenCache_ShortLivedTokenNotCached(t *testing.T) {
	cache := newRecordingCache()
	exchanger := &mockExchanger{token: &domain.OAuthToken{AccessToken: "brief", ExpiresIn: 30}}

	tc := NewTokenCache(cache, exchanger, "", "refresh")
	token, err := tc.GetValidAccessToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "brief", token.AccessToken)
	assert.Empty(t, cache.Puts())
}

func TestTokenCache_ConcurrentMissesShareOneRefresh(t *testing.T) {
	cache := newRecordingCache()
	exchanger := &mockExchanger{
		token: &domain.OAuthToken{AccessToken: "fresh", ExpiresIn: 3600},
		delay: 50 * time.Millisecond,
	}
	tc := NewTokenCache(cache, exchanger, "", "refresh")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := tc.GetValidAccessToken(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "fresh", token.AccessToken)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), exchanger.refreshCalls.Load())
	assert.Len(t, cache.Puts(), 1)
}

func TestTokenCache_Invalidate(t *testing.T) {
	cache := newRecordingCache()
	exchanger := &mockExchanger{token: &domain.OAuthToken{AccessToken: "fresh", ExpiresIn: 3600}}
	tc := NewTokenCache(cache, exchanger, "", "refresh")
	ctx := context.Background()

	_, err := tc.GetValidAccessToken(ctx)
	require.NoError(t, err)
	require.NoError(t, tc.Invalidate(ctx))
	_, err = tc.GetValidAccessToken(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), exchanger.refreshCalls.Load())
}

func TestTokenCache_CancelledCallerDoesNotFailSharedRefresh(t *testing.T) {
	cache := newRecordingCache()
	exchanger := &mockExchanger{
		token: &domain.OAuthToken{AccessToken: "fresh", ExpiresIn: 3600},
		delay: 100 * time.Millisecond,
	}
	tc := NewTokenCache(cache, exchanger, "", "refresh")

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := tc.GetValidAccessToken(firstCtx)
		firstErr <- err
	}()

	// Let the first caller start the exchange, then join it and cancel the first.
	time.Sleep(20 * time.Millisecond)
	second := make(chan *domain.OAuthToken, 1)
	go func() {
		token, err := tc.GetValidAccessToken(context.Background())
		assert.NoError(t, err)
		second <- token
	}()
	time.Sleep(20 * time.Millisecond)
	cancelFirst()

	assert.ErrorIs(t, <-firstErr, context.Canceled)
	token := <-second
	require.NotNil(t, token)
	assert.Equal(t, "fresh", token.AccessToken)
	assert.Equal(t, int32(1), exchanger.refreshCalls.Load())
	assert.Len(t, cache.Puts(), 1)
}
