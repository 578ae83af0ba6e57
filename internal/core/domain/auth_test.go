package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOAuthToken_Lifetime(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn int64
		expected  time.Duration
	}{
		{name: "declared lifetime", expiresIn: 3600, expected: time.Hour},
		{name: "missing lifetime uses default", expiresIn: 0, expected: 3599 * time.Second},
		{name: "negative lifetime uses default", expiresIn: -5, expected: 3599 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := &OAuthToken{AccessToken: "t", ExpiresIn: tt.expiresIn}
			assert.Equal(t, tt.expected, token.Lifetime())
		})
	}
}

func TestOAuthToken_CacheTTL(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn int64
		expected  time.Duration
	}{
		{name: "one hour token", expiresIn: 3600, expected: 3540 * time.Second},
		{name: "default lifetime", expiresIn: 0, expected: 3539 * time.Second},
		{name: "shorter than margin", expiresIn: 30, expected: 0},
		{name: "exactly the margin", expiresIn: 60, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := &OAuthToken{AccessToken: "t", ExpiresIn: tt.expiresIn}
			assert.Equal(t, tt.expected, token.CacheTTL())
		})
	}
}

func TestOAuthToken_IsExpired(t *testing.T) {
	obtained := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	token := &OAuthToken{AccessToken: "t", ExpiresIn: 3600, ObtainedAt: obtained}

	assert.False(t, token.IsExpired(obtained))
	assert.False(t, token.IsExpired(obtained.Add(59*time.Minute)))
	assert.True(t, token.IsExpired(obtained.Add(time.Hour)))
	assert.Equal(t, obtained.Add(time.Hour), token.ExpiresAt())
}

func TestOAuthToken_IsExpired_ZeroObtainedAt(t *testing.T) {
	token := &OAuthToken{AccessToken: "t"}

	assert.False(t, token.IsExpired(time.Now()), "token without ObtainedAt is trusted")
}
