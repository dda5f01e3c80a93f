package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storekit/catalog-api/internal/api"
	"github.com/storekit/catalog-api/internal/infrastructure/config"
	mongodb "github.com/storekit/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/storekit/catalog-api/internal/infrastructure/db/redis"
	"github.com/storekit/catalog-api/internal/infrastructure/storage"
	"github.com/storekit/catalog-api/pkg/logger"
)

// @title        Catalog API
// @version      1.0
// @description  Product catalog service with token-based authentication and role-based access control.

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in    header
// @name  Authorization
// @description  Bearer token obtained from POST /loginUser, with the "Bearer " prefix.

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		_ = rdb.Close()
	}()

	assets, err := storage.NewLocalAssetStore(cfg.AssetDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise asset store")
	}

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := mongodb.NewRoleRepository(db).Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed roles")
	}

	e := api.NewRouter(db, rdb, assets, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("catalog api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
