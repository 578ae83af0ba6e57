package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ytpicker/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/ytpicker/internal/logger"
)

var (
	serveAddr    string
	serveLogFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the picker HTTP API",
	Long: `Starts the HTTP API used by the lesson editor's video picker:

  GET /api/youtube/search?q=<term>&max=<n>
  GET /api/youtube/videos/{id}
  GET /api/youtube/videos/{id}/label
  GET /youtube/oauth/callback
  GET /healthz

The YouTube gateway is rebuilt whenever config.toml changes, so a newly
saved refresh token takes effect without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", httpapi.DefaultAddr, "listen address")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "also write logs to this rotating file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveLogFile != "" {
		if err := logger.SetLogFile(serveLogFile); err != nil {
			return err
		}
		defer logger.SetLogFile("") //nolint:errcheck
	}

	s, err := loadServices(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	reload(ctx, s)
	prune(ctx, s)
	if err := watchConfig(ctx, s); err != nil {
		logger.Warn("config watch disabled: %v", err)
	}

	server := httpapi.NewServer(serveAddr, httpapi.NewRouter(s.Videos))
	cmd.Printf("Listening on http://%s\n", serveAddr)
	return server.ListenAndServe(ctx)
}

func reload(ctx context.Context, s *Services) {
	if s.Reloader == nil {
		return
	}
	result := s.Reloader.Reload(ctx)
	fields := logger.Fields{"status": result.Status.String()}
	if result.Reason != nil {
		fields["reason"] = result.Reason.Error()
		logger.WithFields(fields).Warn("youtube gateway built")
		return
	}
	logger.WithFields(fields).Info("youtube gateway built")
}

func prune(ctx context.Context, s *Services) {
	if s.Prune == nil {
		return
	}
	n, err := s.Prune(ctx)
	if err != nil {
		logger.Warn("pruning cache: %v", err)
		return
	}
	logger.Debug("pruned %d expired cache entries", n)
}

// watchConfig reloads the gateway on every config change until ctx ends.
func watchConfig(ctx context.Context, s *Services) error {
	if s.Watch == nil || s.Reloader == nil {
		return nil
	}
	changes, err := s.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for range changes {
			logger.Info("config changed, rebuilding youtube gateway")
			reload(ctx, s)
		}
	}()
	return nil
}
