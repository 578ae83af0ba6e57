package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidSettings indicates required YouTube settings are missing.
	ErrInvalidSettings = errors.New("invalid youtube settings")

	// ErrServiceNotInitialized indicates the video gateway could not obtain
	// credentials at start-up and is running disabled.
	ErrServiceNotInitialized = errors.New("service not initialized")

	// Authentication Errors.

	// ErrMissingRefreshToken indicates no long-lived refresh token is configured.
	ErrMissingRefreshToken = errors.New("youtube refresh token not configured")

	// ErrRefreshFailed indicates the refresh-token exchange failed.
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrMissingClientCredentials indicates client id or client secret is unset.
	ErrMissingClientCredentials = errors.New("youtube client id and client secret are not configured")

	// ErrNoRefreshTokenIssued indicates the authorization server returned no
	// refresh token, which happens when the app was authorized before and the
	// grant was never revoked.
	ErrNoRefreshTokenIssued = errors.New("no refresh token issued")

	// Remote Errors.

	// ErrRemote indicates the video platform rejected or failed a request.
	ErrRemote = errors.New("remote video service error")
)

// AuthErrorKind distinguishes the two ways obtaining a token can fail.
type AuthErrorKind int

const (
	// AuthMissingRefreshToken means no refresh token is configured.
	AuthMissingRefreshToken AuthErrorKind = iota
	// AuthRefreshFailed means the exchange with the OAuth server failed.
	AuthRefreshFailed
)

// AuthError is returned by the token cache.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case AuthMissingRefreshToken:
		return ErrMissingRefreshToken.Error()
	default:
		if e.Message == "" {
			return ErrRefreshFailed.Error()
		}
		return ErrRefreshFailed.Error() + ": " + e.Message
	}
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *AuthError) Unwrap() []error {
	sentinel := ErrRefreshFailed
	if e.Kind == AuthMissingRefreshToken {
		sentinel = ErrMissingRefreshToken
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}

// RemoteError wraps a failed search or detail call.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + ErrRemote.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap exposes ErrRemote and the underlying cause.
func (e *RemoteError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRemote}
	}
	return []error{ErrRemote, e.Err}
}
