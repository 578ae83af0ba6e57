package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/ytpicker/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ytpicker/internal/adapters/driven/oauth"
	"github.com/custodia-labs/ytpicker/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ytpicker/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ytpicker/internal/adapters/driven/youtube"
	"github.com/custodia-labs/ytpicker/internal/adapters/driving/cli"
	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driven"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
	"github.com/custodia-labs/ytpicker/internal/core/services"
	"github.com/custodia-labs/ytpicker/internal/logger"
)

// cacheStore is the cache selected by cache.driver plus its lifecycle hooks.
type cacheStore struct {
	driven.Cache
	prune func(ctx context.Context) (int64, error)
	close func() error
}

// bootstrap wires the driven adapters behind the CLI services.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, error) {
	logger.Section("Bootstrap")

	store, err := file.NewConfigStore(opts.Home)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config: %s", store.Path())

	settings := services.NewSettingsService(store)

	cache, err := openCache(opts.Home, settings.CacheDriver())
	if err != nil {
		return nil, err
	}

	gateway := services.NewReloadableGateway(func(ctx context.Context) services.GatewayResult {
		return buildGateway(ctx, settings.YouTube(), cache)
	})

	return &cli.Services{
		Videos:   gateway,
		Reloader: gateway,
		Settings: settings,
		Cache:    cache,
		NewSetup: func(redirectURI string) driving.RefreshTokenSetup {
			yt := settings.YouTube()
			yt.RedirectURI = redirectURI
			return services.NewRefreshTokenSetup(yt, oauth.NewYouTubeExchanger(yt))
		},
		Watch:      store.Watch,
		Prune:      cache.prune,
		ConfigPath: store.Path(),
		Close:      cache.close,
	}, nil
}

// openCache opens the store named by driver. SQLite lives in <home>/data.
func openCache(home string, driver domain.CacheDriver) (*cacheStore, error) {
	logger.Debug("cache driver: %s", driver)

	if driver == domain.CacheDriverMemory {
		return &cacheStore{Cache: memory.NewCache()}, nil
	}

	dataDir := ""
	if home != "" {
		dataDir = filepath.Join(home, "data")
	}
	db, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	logger.Debug("cache database: %s", db.Path())

	return &cacheStore{
		Cache: db.Cache(),
		prune: db.PruneExpired,
		close: db.Close,
	}, nil
}

// buildGateway constructs a gateway for the current settings. It is called
// on first use and again whenever the config file changes.
func buildGateway(ctx context.Context, settings domain.YouTubeSettings, cache driven.Cache) services.GatewayResult {
	settings = settings.WithDefaults()

	tokens := services.NewTokenCache(cache, oauth.NewYouTubeExchanger(settings), settings.CacheKey, settings.RefreshToken)
	client, err := youtube.NewClient(ctx, tokens)
	if err != nil {
		return services.GatewayResult{Status: services.GatewayDisabled, Reason: err}
	}

	return services.NewVideoGateway(ctx, services.GatewayConfig{
		Settings: settings,
		Tokens:   tokens,
		Client:   client,
		Cache:    cache,
	})
}
