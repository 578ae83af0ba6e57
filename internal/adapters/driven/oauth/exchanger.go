// Package oauth exchanges OAuth2 grants with Google's authorization server.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driven"
)

// Ensure Exchanger implements the interface.
var _ driven.TokenExchanger = (*Exchanger)(nil)

// requestTimeout bounds each call to the token endpoint.
const requestTimeout = 30 * time.Second

// Config holds the client registration used for exchanges.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	// Endpoint defaults to google.Endpoint.
	Endpoint oauth2.Endpoint

	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// Exchanger implements driven.TokenExchanger on top of golang.org/x/oauth2.
type Exchanger struct {
	config *oauth2.Config
	client *http.Client
	now    func() time.Time
}

// NewExchanger creates an exchanger from cfg.
func NewExchanger(cfg Config) *Exchanger {
	endpoint := cfg.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{domain.YouTubeReadOnlyScope}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}

	return &Exchanger{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		client: client,
		now:    time.Now,
	}
}

// NewYouTubeExchanger creates an exchanger for the read-only YouTube scope.
func NewYouTubeExchanger(settings domain.YouTubeSettings) *Exchanger {
	return NewExchanger(Config{
		ClientID:     settings.ClientID,
		ClientSecret: settings.ClientSecret,
		RedirectURI:  settings.RedirectURI,
	})
}

// Refresh exchanges refreshToken for a new access token.
func (e *Exchanger) Refresh(ctx context.Context, refreshToken string) (*domain.OAuthToken, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.client)

	// A seed without an access token is never valid, so this always refreshes.
	tok, err := e.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, wrapTokenError(err)
	}
	return e.toDomain(tok), nil
}

// AuthCodeURL returns the consent screen URL. It always asks for offline
// access and forces the consent prompt so a refresh token is issued.
func (e *Exchanger) AuthCodeURL(state, codeChallenge string) string {
	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOffline, oauth2.ApprovalForce}
	if codeChallenge != "" {
		opts = append(opts,
			oauth2.SetAuthURLParam("code_challenge", codeChallenge),
			oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		)
	}
	return e.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (e *Exchanger) Exchange(ctx context.Context, code, codeVerifier string) (*domain.OAuthToken, string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.client)

	var opts []oauth2.AuthCodeOption
	if codeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(codeVerifier))
	}
	tok, err := e.config.Exchange(ctx, code, opts...)
	if err != nil {
		return nil, "", wrapTokenError(err)
	}
	return e.toDomain(tok), tok.RefreshToken, nil
}

func (e *Exchanger) toDomain(tok *oauth2.Token) *domain.OAuthToken {
	now := e.now()
	expiresIn := tok.ExpiresIn
	if expiresIn <= 0 && !tok.Expiry.IsZero() {
		expiresIn = int64(math.Round(tok.Expiry.Sub(now).Seconds()))
	}
	if expiresIn < 0 {
		expiresIn = 0
	}
	return &domain.OAuthToken{
		AccessToken: tok.AccessToken,
		TokenType:   tok.Type(),
		ExpiresIn:   expiresIn,
		ObtainedAt:  now,
	}
}

// wrapTokenError surfaces the OAuth error code and description.
func wrapTokenError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.ErrorCode != "" {
		if rerr.ErrorDescription != "" {
			return fmt.Errorf("token error: %s - %s: %w", rerr.ErrorCode, rerr.ErrorDescription, err)
		}
		return fmt.Errorf("token error: %s: %w", rerr.ErrorCode, err)
	}
	return fmt.Errorf("token request: %w", err)
}
