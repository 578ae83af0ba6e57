package driving

import "context"

// RefreshTokenSetup drives the one-time consent flow that yields a refresh token.
type RefreshTokenSetup interface {
	// Start returns the consent URL and the state value embedded in it.
	Start() (authURL, state string, err error)

	// Complete exchanges the pasted authorization code for a refresh token.
	Complete(ctx context.Context, code string) (string, error)
}
