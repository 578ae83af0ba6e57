// Package cli provides the cobra commands of the ytpicker binary.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
	"github.com/custodia-labs/ytpicker/internal/core/services"
	"github.com/custodia-labs/ytpicker/internal/logger"
)

// HomeEnv overrides the ytpicker home directory.
const HomeEnv = "YTPICKER_HOME"

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var (
	verbose bool
	homeDir string
)

// ErrNotConfigured is returned when a command needs services but no
// bootstrap was registered.
var ErrNotConfigured = errors.New("ytpicker services not configured")

// Options carries the global flags into the bootstrap.
type Options struct {
	// Home is the directory holding config.toml and data/. Empty means
	// the default (~/.ytpicker).
	Home    string
	Verbose bool
}

// CacheAdmin is the part of the cache the cache commands operate on.
type CacheAdmin interface {
	Forget(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
}

// GatewayReloader rebuilds the video gateway from current settings.
type GatewayReloader interface {
	Reload(ctx context.Context) services.GatewayResult
}

// Services aggregates everything the commands drive.
type Services struct {
	Videos   driving.VideoGateway
	Reloader GatewayReloader
	Settings driving.SettingsService
	Cache    CacheAdmin

	// NewSetup builds a refresh-token wizard whose exchanger uses
	// redirectURI.
	NewSetup func(redirectURI string) driving.RefreshTokenSetup

	// Watch reports configuration file changes. Optional.
	Watch func(ctx context.Context) (<-chan struct{}, error)

	// Prune drops expired cache rows. Optional.
	Prune func(ctx context.Context) (int64, error)

	// ConfigPath is shown after saving settings.
	ConfigPath string

	Close func() error
}

// BootstrapFunc wires Services for the given global options.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap BootstrapFunc
	svc       *Services
)

// SetBootstrap registers the function that wires services on first use.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs ready-made services, bypassing the bootstrap.
func SetServices(s *Services) {
	svc = s
}

var rootCmd = &cobra.Command{
	Use:   "ytpicker",
	Short: "Pick YouTube videos from a channel to embed as lesson media",
	Long: `ytpicker searches one preconfigured YouTube channel and resolves videos
to embeddable details. It keeps an OAuth2 access token fresh from a
long-lived refresh token and caches video lookups.

Configuration lives in ~/.ytpicker/config.toml (override with --home or
YTPICKER_HOME). YOUTUBE_* environment variables and a .env file in the
working directory take precedence over the file.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", os.Getenv(HomeEnv),
		"ytpicker home directory (default ~/.ytpicker, env "+HomeEnv+")")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

// loadServices returns the wired services, bootstrapping them once.
func loadServices(cmd *cobra.Command) (*Services, error) {
	if svc != nil {
		return svc, nil
	}
	if bootstrap == nil {
		return nil, ErrNotConfigured
	}

	s, err := bootstrap(cmd.Context(), Options{Home: homeDir, Verbose: verbose})
	if err != nil {
		return nil, err
	}
	svc = s
	return svc, nil
}

func closeServices() {
	if svc == nil || svc.Close == nil {
		return
	}
	if err := svc.Close(); err != nil {
		logger.Warn("closing services: %v", err)
	}
}
