package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

func newTestExchanger(t *testing.T, handler http.HandlerFunc) (*Exchanger, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ex := NewExchanger(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/youtube/oauth/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:   server.URL + "/auth",
			TokenURL:  server.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		HTTPClient: server.Client(),
	})
	return ex, server
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestExchanger_Refresh(t *testing.T) {
	var form url.Values
	ex, _ := newTestExchanger(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "ya29.fresh",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	token, err := ex.Refresh(context.Background(), "1//refresh")

	require.NoError(t, err)
	assert.Equal(t, "ya29.fresh", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.InDelta(t, 3600, token.ExpiresIn, 1)
	assert.False(t, token.ObtainedAt.IsZero())

	assert.Equal(t, "refresh_token", form.Get("grant_type"))
	assert.Equal(t, "1//refresh", form.Get("refresh_token"))
	assert.Equal(t, "client-id", form.Get("client_id"))
	assert.Equal(t, "client-secret", form.Get("client_secret"))
}

func TestExchanger_Refresh_MissingExpiresIn(t *testing.T) {
	ex, _ := newTestExchanger(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "ya29.noexp", "token_type": "Bearer"})
	})

	token, err := ex.Refresh(context.Background(), "1//refresh")

	require.NoError(t, err)
	assert.Equal(t, int64(0), token.ExpiresIn)
	assert.Equal(t, domain.DefaultTokenLifetime, token.Lifetime())
	assert.Equal(t, 3539*time.Second, token.CacheTTL())
}

func TestExchanger_Refresh_InvalidGrant(t *testing.T) {
	ex, _ := newTestExchanger(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":             "invalid_grant",
			"error_description": "Token has been expired or revoked.",
		})
	})

	token, err := ex.Refresh(context.Background(), "revoked")

	assert.Nil(t, token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
	assert.Contains(t, err.Error(), "Token has been expired or revoked.")

	var rerr *oauth2.RetrieveError
	assert.ErrorAs(t, err, &rerr)
}

func TestExchanger_AuthCodeURL(t *testing.T) {
	ex, server := newTestExchanger(t, func(http.ResponseWriter, *http.Request) {})

	raw := ex.AuthCodeURL("state-123", "challenge-abc")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/auth", u.Scheme+"://"+u.Host+u.Path)

	q := u.Query()
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, domain.YouTubeReadOnlyScope, q.Get("scope"))
	assert.Equal(t, "http://localhost:8080/youtube/oauth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "challenge-abc", q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
}

func TestExchanger_AuthCodeURL_WithoutPKCE(t *testing.T) {
	ex, _ := newTestExchanger(t, func(http.ResponseWriter, *http.Request) {})

	u, err := url.Parse(ex.AuthCodeURL("s", ""))

	require.NoError(t, err)
	assert.Empty(t, u.Query().Get("code_challenge"))
}

func TestExchanger_Exchange(t *testing.T) {
	var form url.Values
	ex, _ := newTestExchanger(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "ya29.a",
			"refresh_token": "1//long-lived",
			"token_type":    "Bearer",
			"expires_in":    3599,
		})
	})

	token, refresh, err := ex.Exchange(context.Background(), "4/0Acode", "verifier-xyz")

	require.NoError(t, err)
	assert.Equal(t, "ya29.a", token.AccessToken)
	assert.Equal(t, "1//long-lived", refresh)
	assert.Equal(t, "authorization_code", form.Get("grant_type"))
	assert.Equal(t, "4/0Acode", form.Get("code"))
	assert.Equal(t, "verifier-xyz", form.Get("code_verifier"))
	assert.Equal(t, "http://localhost:8080/youtube/oauth/callback", form.Get("redirect_uri"))
}

func TestExchanger_Exchange_NoRefreshToken(t *testing.T) {
	ex, _ := newTestExchanger(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "ya29.a", "token_type": "Bearer", "expires_in": 3599})
	})

	_, refresh, err := ex.Exchange(context.Background(), "code", "")

	require.NoError(t, err)
	assert.Empty(t, refresh)
}

func TestNewYouTubeExchanger_Defaults(t *testing.T) {
	ex := NewYouTubeExchanger(domain.YouTubeSettings{ClientID: "id", ClientSecret: "secret"})

	assert.Equal(t, "https://oauth2.googleapis.com/token", ex.config.Endpoint.TokenURL)
	assert.Equal(t, []string{domain.YouTubeReadOnlyScope}, ex.config.Scopes)
	assert.Equal(t, requestTimeout, ex.client.Timeout)
}
