package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driven"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyClientID     = "youtube.client_id"
	keyClientSecret = "youtube.client_secret"
	keyRedirectURI  = "youtube.redirect_uri"
	keyChannelID    = "youtube.channel_id"
	keyRefreshToken = "youtube.refresh_token"
	keyCacheKey     = "youtube.cache_key"
	keyAppURL       = "app.url"
	keyCacheDriver  = "cache.driver"
)

// envOverrides maps config keys to the environment variables that win over them.
//
//nolint:gosec // G101: environment variable names.
var envOverrides = map[string]string{
	keyClientID:     "YOUTUBE_CLIENT_ID",
	keyClientSecret: "YOUTUBE_CLIENT_SECRET",
	keyRedirectURI:  "YOUTUBE_REDIRECT_URI",
	keyChannelID:    "YOUTUBE_CHANNEL_ID",
	keyRefreshToken: "YOUTUBE_REFRESH_TOKEN",
	keyCacheKey:     "YOUTUBE_CACHE_KEY",
	keyAppURL:       "APP_URL",
}

// SettingsOption customises a SettingsService.
type SettingsOption func(*SettingsService)

// WithEnvLookup replaces os.LookupEnv, mainly for tests.
func WithEnvLookup(lookup func(string) (string, bool)) SettingsOption {
	return func(s *SettingsService) {
		s.lookupEnv = lookup
	}
}

// SettingsService resolves YouTube settings from the config store with
// environment overrides.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// YouTube returns the effective settings with defaults applied.
func (s *SettingsService) YouTube() domain.YouTubeSettings {
	return domain.YouTubeSettings{
		ClientID:     s.getString(keyClientID),
		ClientSecret: s.getString(keyClientSecret),
		RedirectURI:  s.getString(keyRedirectURI),
		ChannelID:    s.getString(keyChannelID),
		RefreshToken: s.getString(keyRefreshToken),
		CacheKey:     s.getString(keyCacheKey),
		AppURL:       s.getString(keyAppURL),
	}.WithDefaults()
}

// Validate checks that every required setting is present.
func (s *SettingsService) Validate() error {
	return s.YouTube().Validate()
}

// SaveRefreshToken persists a refresh token to the config store.
func (s *SettingsService) SaveRefreshToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: empty refresh token", domain.ErrInvalidSettings)
	}
	if err := s.configStore.Set(keyRefreshToken, token); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// RefreshTokenOverridden reports whether YOUTUBE_REFRESH_TOKEN shadows the
// config file value.
func (s *SettingsService) RefreshTokenOverridden() bool {
	_, ok := s.env(keyRefreshToken)
	return ok
}

// CacheDriver returns the configured cache store, defaulting to SQLite.
func (s *SettingsService) CacheDriver() domain.CacheDriver {
	driver := domain.CacheDriver(strings.ToLower(s.configStore.GetString(keyCacheDriver)))
	if !driver.IsValid() {
		return domain.DefaultCacheDriver
	}
	return driver
}

func (s *SettingsService) env(key string) (string, bool) {
	name, ok := envOverrides[key]
	if !ok {
		return "", false
	}
	value, ok := s.lookupEnv(name)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func (s *SettingsService) getString(key string) string {
	if value, ok := s.env(key); ok {
		return value
	}
	return strings.TrimSpace(s.configStore.GetString(key))
}
