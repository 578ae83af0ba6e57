package youtube

import (
	"net/http"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
)

// Transport authenticates each request with a token from the token cache.
// The token is resolved on the request's own context, so a client outlives
// whatever context it was built with.
type Transport struct {
	tokens driving.TokenService
	base   http.RoundTripper
}

// NewTransport wraps base; a nil base means http.DefaultTransport.
func NewTransport(tokens driving.TokenService, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{tokens: tokens, base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.GetValidAccessToken(req.Context())
	if err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}

	// A RoundTripper must not modify the caller's request.
	authed := req.Clone(req.Context())
	(&oauth2.Token{AccessToken: token.AccessToken, TokenType: "Bearer"}).SetAuthHeader(authed)
	return t.base.RoundTrip(authed)
}
