package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/ytpicker/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driven"
)

// --- Mock implementations ---

// recordingCache wraps the memory cache and records writes.
type recordingCache struct {
	*memory.Cache

	mu     sync.Mutex
	puts   []cachePut
	getErr error
	putErr error
}

type cachePut struct {
	key   string
	value string
	ttl   time.Duration
}

func newRecordingCache() *recordingCache {
	return &recordingCache{Cache: memory.NewCache()}
}

func (c *recordingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.Cache.Get(ctx, key)
}

func (c *recordingCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.puts = append(c.puts, cachePut{key: key, value: string(value), ttl: ttl})
	c.mu.Unlock()
	if c.putErr != nil {
		return c.putErr
	}
	return c.Cache.Put(ctx, key, value, ttl)
}

func (c *recordingCache) Puts() []cachePut {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]cachePut(nil), c.puts...)
}

// mockExchanger implements driven.TokenExchanger for testing.
type mockExchanger struct {
	token        *domain.OAuthToken
	refreshErr   error
	delay        time.Duration
	refreshCalls atomic.Int32
	lastRefresh  atomic.Value

	authState      string
	authChallenge  string
	exchangeCode   string
	exchangeVerif  string
	exchangeResult string
	exchangeErr    error
}

func (m *mockExchanger) Refresh(ctx context.Context, refreshToken string) (*domain.OAuthToken, error) {
	m.refreshCalls.Add(1)
	m.lastRefresh.Store(refreshToken)
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	token := *m.token
	return &token, nil
}

func (m *mockExchanger) AuthCodeURL(state, codeChallenge string) string {
	m.authState = state
	m.authChallenge = codeChallenge
	return "https://accounts.example.com/auth?state=" + state
}

func (m *mockExchanger) Exchange(_ context.Context, code, codeVerifier string) (*domain.OAuthToken, string, error) {
	m.exchangeCode = code
	m.exchangeVerif = codeVerifier
	if m.exchangeErr != nil {
		return nil, "", m.exchangeErr
	}
	return &domain.OAuthToken{AccessToken: "access"}, m.exchangeResult, nil
}

// mockTokens implements driving.TokenService for testing.
type mockTokens struct {
	err   error
	calls atomic.Int32
}

func (m *mockTokens) GetValidAccessToken(_ context.Context) (*domain.OAuthToken, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.OAuthToken{AccessToken: "token"}, nil
}

func (m *mockTokens) Invalidate(_ context.Context) error {
	return nil
}

// mockVideoClient implements driven.VideoClient for testing.
type mockVideoClient struct {
	videos    []domain.VideoSummary
	searchErr error
	snippets  map[string]*domain.VideoSnippet
	getErr    error

	mu          sync.Mutex
	searches    []driven.VideoSearch
	getRequests []string
}

func (m *mockVideoClient) Search(_ context.Context, search driven.VideoSearch) ([]domain.VideoSummary, error) {
	m.mu.Lock()
	m.searches = append(m.searches, search)
	m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.videos, nil
}

func (m *mockVideoClient) GetVideo(_ context.Context, videoID string) (*domain.VideoSnippet, error) {
	m.mu.Lock()
	m.getRequests = append(m.getRequests, videoID)
	m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.snippets[videoID], nil
}

func (m *mockVideoClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.searches) + len(m.getRequests)
}
