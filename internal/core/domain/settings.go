package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// Default setting values.
const (
	DefaultCacheKey      = "youtube_access_token"
	DefaultAppURL        = "http://localhost:8080"
	OAuthCallbackPath    = "/youtube/oauth/callback"
	YouTubeReadOnlyScope = "https://www.googleapis.com/auth/youtube.readonly"
)

// YouTubeSettings holds everything needed to talk to the YouTube Data API
// on behalf of one channel.
type YouTubeSettings struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
	ChannelID    string `json:"channel_id"`
	RefreshToken string `json:"refresh_token"`

	// CacheKey is the cache entry the access token is stored under.
	CacheKey string `json:"cache_key"`

	// AppURL is the public base URL, used as the embedded player's origin.
	AppURL string `json:"app_url"`
}

// WithDefaults fills empty optional fields.
func (s YouTubeSettings) WithDefaults() YouTubeSettings {
	if s.CacheKey == "" {
		s.CacheKey = DefaultCacheKey
	}
	if s.AppURL == "" {
		s.AppURL = DefaultAppURL
	}
	if s.RedirectURI == "" {
		s.RedirectURI = strings.TrimRight(s.AppURL, "/") + OAuthCallbackPath
	}
	return s
}

// Missing returns the names of required settings that are empty.
func (s YouTubeSettings) Missing() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("client_id", s.ClientID)
	check("client_secret", s.ClientSecret)
	check("redirect_uri", s.RedirectURI)
	check("channel_id", s.ChannelID)
	check("refresh_token", s.RefreshToken)
	return missing
}

// Validate returns ErrInvalidSettings naming every missing field.
func (s YouTubeSettings) Validate() error {
	if missing := s.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidSettings, strings.Join(missing, ", "))
	}
	return nil
}

// RequireClientCredentials checks the subset needed to run the consent flow.
func (s YouTubeSettings) RequireClientCredentials() error {
	if strings.TrimSpace(s.ClientID) == "" || strings.TrimSpace(s.ClientSecret) == "" {
		return ErrMissingClientCredentials
	}
	return nil
}

// HasRefreshToken reports whether a refresh token is configured.
func (s YouTubeSettings) HasRefreshToken() bool {
	return strings.TrimSpace(s.RefreshToken) != ""
}

// CacheDriver selects the cache store implementation.
type CacheDriver string

// Available cache drivers.
const (
	// CacheDriverSQLite persists entries in a local SQLite database.
	CacheDriverSQLite CacheDriver = "sqlite"

	// CacheDriverMemory keeps entries for the lifetime of the process.
	CacheDriverMemory CacheDriver = "memory"
)

// IsValid returns true if the driver is recognised.
func (d CacheDriver) IsValid() bool {
	switch d {
	case CacheDriverSQLite, CacheDriverMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d CacheDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d CacheDriver) Description() string {
	switch d {
	case CacheDriverSQLite:
		return "SQLite (persistent)"
	case CacheDriverMemory:
		return "Memory (process lifetime)"
	default:
		return unknownDescription
	}
}

// DefaultCacheDriver is used when cache.driver is unset or invalid.
const DefaultCacheDriver = CacheDriverSQLite
