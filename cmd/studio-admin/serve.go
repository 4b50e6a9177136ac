package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accesscast/studio-admin/internal/api"
	"github.com/accesscast/studio-admin/internal/infrastructure/config"
	mongodb "github.com/accesscast/studio-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/accesscast/studio-admin/internal/infrastructure/db/redis"
	"github.com/accesscast/studio-admin/internal/infrastructure/jobs"
	"github.com/accesscast/studio-admin/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	if err := ensureIndexes(ctx, db); err != nil {
		return err
	}

	runner := jobs.NewRunner(log)
	runner.Start(ctx)

	e, svcs := api.NewRouter(cfg, db, rdb, runner, log)

	if err := svcs.Allowlist.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("allowlist refresh failed, starting with empty matcher")
	}

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	// Flush dirty layout sessions so debounced edits survive the restart.
	if err := svcs.Layout.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("layout flush")
	}

	log.Info().Msg("shutdown complete")
	return nil
}

// ensureIndexes creates the indexes the repositories rely on. Creation is
// idempotent; running it on every boot keeps fresh environments usable.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewAuthRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewPreferencesRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewMovieRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewAssetRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewTaskRepository(db).EnsureIndexes(ctx)
}
