package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
	"github.com/custodia-labs/ytpicker/internal/core/services"
)

type mockGateway struct {
	result   domain.SearchResult
	details  map[string]*domain.VideoDetail
	ready    bool
	reason   error
	lastTerm string
	lastMax  int
}

func (m *mockGateway) SearchVideos(_ context.Context, term string, maxResults int) domain.SearchResult {
	m.lastTerm = term
	m.lastMax = maxResults
	return m.result
}

func (m *mockGateway) GetVideoDetails(_ context.Context, videoID string) *domain.VideoDetail {
	return m.details[videoID]
}

func (m *mockGateway) GetVideoLabel(_ context.Context, videoID string) string {
	if d, ok := m.details[videoID]; ok && d != nil {
		return d.Title
	}
	return domain.VideoNotFoundLabel
}

func (m *mockGateway) Ready() bool   { return m.ready }
func (m *mockGateway) Reason() error { return m.reason }

type mockSettings struct {
	settings   domain.YouTubeSettings
	saved      string
	saveErr    error
	overridden bool
}

func (m *mockSettings) RefreshTokenOverridden() bool { return m.overridden }

func (m *mockSettings) YouTube() domain.YouTubeSettings { return m.settings.WithDefaults() }
func (m *mockSettings) Validate() error                 { return m.settings.Validate() }
func (m *mockSettings) CacheDriver() domain.CacheDriver { return domain.DefaultCacheDriver }

func (m *mockSettings) SaveRefreshToken(token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = token
	return nil
}

type mockCache struct {
	forgotten []string
	cleared   []string
}

func (m *mockCache) Forget(_ context.Context, key string) error {
	m.forgotten = append(m.forgotten, key)
	return nil
}

func (m *mockCache) Clear(_ context.Context, prefix string) error {
	m.cleared = append(m.cleared, prefix)
	return nil
}

type mockSetup struct {
	redirectURI string
	state       string
	code        string
	token       string
	err         error
}

func (m *mockSetup) Start() (string, string, error) {
	return "https://accounts.example.com/auth?state=" + m.state, m.state, nil
}

func (m *mockSetup) Complete(_ context.Context, code string) (string, error) {
	m.code = code
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

type mockReloader struct {
	calls  atomic.Int32
	result services.GatewayResult
}

func (m *mockReloader) Reload(_ context.Context) services.GatewayResult {
	m.calls.Add(1)
	return m.result
}

func testSettings() domain.YouTubeSettings {
	return domain.YouTubeSettings{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://lessons.example.com/youtube/oauth/callback",
		ChannelID:    "UC123",
		RefreshToken: "1//refresh-token-value",
	}
}

// newTestServices returns services backed by mocks; setup is returned by
// NewSetup after recording the requested redirect URI.
func newTestServices(gw *mockGateway, setup *mockSetup) (*Services, *mockSettings, *mockCache) {
	settings := &mockSettings{settings: testSettings()}
	cache := &mockCache{}
	s := &Services{
		Videos:   gw,
		Settings: settings,
		Cache:    cache,
		NewSetup: func(redirectURI string) driving.RefreshTokenSetup {
			setup.redirectURI = redirectURI
			return setup
		},
		ConfigPath: "/tmp/ytpicker/config.toml",
	}
	return s, settings, cache
}

// execute runs the root command with args against s and returns the
// combined output.
func execute(t *testing.T, s *Services, stdin string, args ...string) (string, error) {
	t.Helper()
	return executeContext(context.Background(), t, s, stdin, args...)
}

func executeContext(ctx context.Context, t *testing.T, s *Services, stdin string, args ...string) (string, error) {
	t.Helper()

	SetServices(s)
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(os.Stdout)
		rootCmd.SetErr(os.Stderr)
		rootCmd.SetIn(os.Stdin)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
