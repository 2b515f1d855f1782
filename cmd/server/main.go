package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/wanderlust-travel/wanderlust/internal/api"
	"github.com/wanderlust-travel/wanderlust/internal/infrastructure/blob"
	"github.com/wanderlust-travel/wanderlust/internal/infrastructure/config"
	mongodb "github.com/wanderlust-travel/wanderlust/internal/infrastructure/db/mongo"
	redisdb "github.com/wanderlust-travel/wanderlust/internal/infrastructure/db/redis"
	"github.com/wanderlust-travel/wanderlust/internal/infrastructure/queue"
	"github.com/wanderlust-travel/wanderlust/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := mongodb.NewListingRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("listing indexes failed")
	}

	// --- Redis (session store) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Blob storage (listing images) ---
	minioClient, err := minio.New(cfg.Blob.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Blob.AccessKey, cfg.Blob.SecretKey, ""),
		Secure: cfg.Blob.UseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("blob client failed")
	}
	images, err := blob.NewImageStore(ctx, minioClient, cfg.Blob.Bucket, cfg.Blob.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("blob bucket failed")
	}

	cleaner := queue.NewCleaner(images, log)
	cleaner.Start(ctx)

	e, err := api.NewRouter(db, rdb, images, cleaner, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
