package driving

import "github.com/custodia-labs/ytpicker/internal/core/domain"

// SettingsService resolves YouTube settings from config and environment.
type SettingsService interface {
	// YouTube returns the effective settings with defaults applied.
	YouTube() domain.YouTubeSettings

	// Validate checks that every required setting is present.
	Validate() error

	// SaveRefreshToken persists a refresh token to the config file.
	SaveRefreshToken(token string) error

	// RefreshTokenOverridden reports whether the environment shadows the
	// saved refresh token.
	RefreshTokenOverridden() bool

	// CacheDriver returns the configured cache store.
	CacheDriver() domain.CacheDriver
}
