package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dpup/terrain-profile/internal/cache"
	"github.com/dpup/terrain-profile/internal/config"
	"github.com/dpup/terrain-profile/internal/logging"
	"github.com/dpup/terrain-profile/internal/metrics"
	"github.com/dpup/terrain-profile/internal/server"
	"github.com/dpup/terrain-profile/internal/services"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the profile API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	cacheInstance := cache.NewCache(logger)
	cacheInstance.StartPeriodicCleanup(ctx, cfg.Cache.CleanupInterval)

	m := metrics.New()
	m.RegisterCacheEntries(func() (int, int) {
		stats := cacheInstance.Stats()
		return stats.FreshEntries, stats.StaleEntries
	})
	store := cache.NewProfileStore(cacheInstance, cfg.Cache.TTL)
	profileService := services.NewProfileService(store, cfg.Profile.PartGaps, m, logger)

	logger.Info("Terrain profile server starting",
		zap.Int("port", cfg.Server.Port),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
		zap.Bool("part_gaps", cfg.Profile.PartGaps))

	if err := server.New(&cfg.Server, profileService, m, logger).Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
