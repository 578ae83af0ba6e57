package driving

import (
	"context"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// TokenService hands out a valid access token, refreshing when needed.
type TokenService interface {
	// GetValidAccessToken returns a cached token or exchanges the configured
	// refresh token for a new one.
	GetValidAccessToken(ctx context.Context) (*domain.OAuthToken, error)

	// Invalidate drops the cached token so the next call refreshes.
	Invalidate(ctx context.Context) error
}
