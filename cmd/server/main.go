// Command server runs the media catalog API.
//
// @title        Media Catalog API
// @version      1.0
// @description  Song, album and playlist catalog with JWT auth and role-gated admin operations.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/soundstash/media-catalog/internal/api"
	"github.com/soundstash/media-catalog/internal/core/ports"
	"github.com/soundstash/media-catalog/internal/core/service"
	"github.com/soundstash/media-catalog/internal/infrastructure/config"
	mongodb "github.com/soundstash/media-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/soundstash/media-catalog/internal/infrastructure/db/redis"
	"github.com/soundstash/media-catalog/internal/infrastructure/queue"
	"github.com/soundstash/media-catalog/pkg/logger"
)

func main() {
	// .env is a development convenience; in production everything comes
	// from the real environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "media-catalog",
	})

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index setup failed")
	}

	// --- Redis (optional: enables token revocation) ---
	var denylist ports.TokenDenylist
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		defer redisClient.Close()
		denylist = redisdb.NewDenylist(redisClient, cfg.TokenTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	} else {
		log.Info().Msg("no REDIS_ADDR set; token revocation disabled, expiry is the only termination")
	}

	// --- Media store + purge workers ---
	media, err := mongodb.NewMediaStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("media store init failed")
	}
	purger := queue.NewDispatcher(0, media, log)
	purger.Start(ctx)

	// --- HTTP ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	e := api.NewRouter(api.Deps{
		DB:       db,
		Redis:    redisClient,
		Tokens:   tokens,
		Denylist: denylist,
		Media:    media,
		Purger:   purger,
		Logger:   log,
	})
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
