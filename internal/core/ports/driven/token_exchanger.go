package driven

import (
	"context"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// TokenExchanger talks to the OAuth2 authorization server.
type TokenExchanger interface {
	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*domain.OAuthToken, error)

	// AuthCodeURL builds the consent URL for an offline, read-only grant.
	// codeChallenge is the S256 PKCE challenge; empty disables PKCE.
	AuthCodeURL(state, codeChallenge string) string

	// Exchange trades an authorization code for tokens.
	// The returned refresh token is empty when the server did not issue one.
	Exchange(ctx context.Context, code, codeVerifier string) (token *domain.OAuthToken, refreshToken string, err error)
}
