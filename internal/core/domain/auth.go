package domain

import "time"

// DefaultTokenLifetime is used when the OAuth response omits expires_in.
const DefaultTokenLifetime = 3599 * time.Second

// TokenSafetyMargin is subtracted from a token's lifetime when caching it,
// so a cached token is never handed out in its final minute.
const TokenSafetyMargin = 60 * time.Second

// OAuthToken is a short-lived access token obtained from a refresh exchange.
type OAuthToken struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`
	// ExpiresIn is the lifetime declared by the OAuth server, in seconds.
	ExpiresIn int64 `json:"expires_in,omitempty"`
	// ObtainedAt is when the exchange completed.
	ObtainedAt time.Time `json:"obtained_at"`
}

// Lifetime returns the declared lifetime, falling back to DefaultTokenLifetime.
func (t *OAuthToken) Lifetime() time.Duration {
	if t.ExpiresIn <= 0 {
		return DefaultTokenLifetime
	}
	return time.Duration(t.ExpiresIn) * time.Second
}

// CacheTTL is how long the token may live in a cache store.
// Never negative; a token declared shorter than the margin is not cacheable.
func (t *OAuthToken) CacheTTL() time.Duration {
	ttl := t.Lifetime() - TokenSafetyMargin
	if ttl < 0 {
		return 0
	}
	return ttl
}

// ExpiresAt returns the instant the token stops being valid remotely.
func (t *OAuthToken) ExpiresAt() time.Time {
	return t.ObtainedAt.Add(t.Lifetime())
}

// IsExpired returns true if the token has expired at now.
func (t *OAuthToken) IsExpired(now time.Time) bool {
	if t.ObtainedAt.IsZero() {
		return false
	}
	return !now.Before(t.ExpiresAt())
}
