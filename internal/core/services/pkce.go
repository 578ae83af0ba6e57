package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// RFC 7636 allows verifiers of 43-128 characters; 64 random bytes encode to 86.
const codeVerifierLength = 64

// stateLength is the number of random bytes behind an OAuth state value.
const stateLength = 32

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// generateCodeVerifier creates a random PKCE code verifier.
func generateCodeVerifier() (string, error) {
	return randomToken(codeVerifierLength)
}

// generateCodeChallenge derives the S256 challenge sent with the consent URL.
func generateCodeChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// generateState creates the state parameter echoed back by the consent screen.
func generateState() (string, error) {
	return randomToken(stateLength)
}
