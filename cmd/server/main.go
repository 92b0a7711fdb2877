package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"media_backend/internal/app/di"
	"media_backend/internal/app/router"
	authadapters "media_backend/internal/feature/auth/adapters"
	authhandler "media_backend/internal/feature/auth/transport/handler"
	authusecase "media_backend/internal/feature/auth/usecase"
	storagehandler "media_backend/internal/feature/storage/transport/handler"
	storageusecase "media_backend/internal/feature/storage/usecase"
	"media_backend/internal/platform/config"
	infradb "media_backend/internal/platform/db"
	"media_backend/internal/platform/ratelimit"
	infraredis "media_backend/internal/platform/redis"
	"media_backend/internal/platform/token"
)

func main() {
	ctx := context.Background()

	// Configuration is resolved exactly once; everything downstream takes it
	// as an argument.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// db
	db := infradb.OpenDB(cfg)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewClient(cfg); err != nil {
		slog.Warn("Redis unavailable, running without cache")
	} else {
		rdb = tmp
		if rdb != nil {
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Object store (S3/MinIO), presign URLs cached when Redis is up
	store, err := di.NewObjectStore(ctx, cfg, rdb)
	if err != nil {
		log.Fatalf("failed to set up object storage: %v", err)
	}

	// Auth core
	userDir := authadapters.NewUserPostgres(db)
	hasher := authusecase.NewBcryptHasher(cfg.BcryptCost)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTExpiration)
	validator := authusecase.NewCredentialValidator(userDir, hasher)
	sessions := authusecase.NewSessionService(userDir, hasher, validator, issuer)

	// Usecases and handlers
	files := storageusecase.NewStorageUsecase(store)
	authH := authhandler.NewAuthHandler(sessions)
	filesH := storagehandler.NewStorageHandler(files)

	// Credential endpoints are throttled per client IP
	limiter := ratelimit.NewLimiter(rdb, cfg.AuthThrottleLimit, cfg.AuthThrottleTTL, "auth")

	r := router.NewRouter(authH, filesH, issuer, ratelimit.Middleware(limiter))

	if err := r.Run(fmt.Sprintf(":%d", cfg.AppPort)); err != nil {
		log.Fatal(err)
	}
}
