package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driven"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
	"github.com/custodia-labs/ytpicker/internal/logger"
)

// Ensure RefreshTokenSetup implements the interface.
var _ driving.RefreshTokenSetup = (*RefreshTokenSetup)(nil)

// ErrEmptyAuthorizationCode is returned when no code was pasted.
var ErrEmptyAuthorizationCode = errors.New("authorization code is empty")

// RevokeAccessURL is where an operator revokes a previous grant so the next
// consent issues a fresh refresh token.
const RevokeAccessURL = "https://myaccount.google.com/permissions"

// RefreshTokenSetup runs the one-time consent flow that yields a long-lived
// refresh token. Each Start generates a new state and PKCE verifier.
type RefreshTokenSetup struct {
	settings  domain.YouTubeSettings
	exchanger driven.TokenExchanger

	mu       sync.Mutex
	state    string
	verifier string
}

// NewRefreshTokenSetup creates a setup flow for the given credentials.
func NewRefreshTokenSetup(settings domain.YouTubeSettings, exchanger driven.TokenExchanger) *RefreshTokenSetup {
	return &RefreshTokenSetup{settings: settings, exchanger: exchanger}
}

// Start returns the consent URL and the state embedded in it.
func (r *RefreshTokenSetup) Start() (authURL, state string, err error) {
	if err := r.settings.RequireClientCredentials(); err != nil {
		return "", "", err
	}

	state, err = generateState()
	if err != nil {
		return "", "", fmt.Errorf("generate state: %w", err)
	}
	verifier, err := generateCodeVerifier()
	if err != nil {
		return "", "", fmt.Errorf("generate code verifier: %w", err)
	}

	r.mu.Lock()
	r.state = state
	r.verifier = verifier
	r.mu.Unlock()

	return r.exchanger.AuthCodeURL(state, generateCodeChallenge(verifier)), state, nil
}

// State returns the state issued by the last Start.
func (r *RefreshTokenSetup) State() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Complete exchanges the authorization code for a refresh token.
func (r *RefreshTokenSetup) Complete(ctx context.Context, code string) (string, error) {
	if err := r.settings.RequireClientCredentials(); err != nil {
		return "", err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrEmptyAuthorizationCode
	}

	r.mu.Lock()
	verifier := r.verifier
	r.mu.Unlock()

	_, refreshToken, err := r.exchanger.Exchange(ctx, code, verifier)
	if err != nil {
		logger.Error("authorization code exchange failed: %v", err)
		return "", fmt.Errorf("exchange authorization code: %w", err)
	}
	if refreshToken == "" {
		return "", domain.ErrNoRefreshTokenIssued
	}
	return refreshToken, nil
}
