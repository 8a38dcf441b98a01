package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/cache"
	"gonotes/internal/notes/adapters/memory"
	"gonotes/internal/notes/adapters/postgres"
	"gonotes/internal/notes/config"
	"gonotes/internal/notes/db"
	"gonotes/internal/notes/ports/repositories"
	svc "gonotes/internal/notes/ports/services"
	"gonotes/pkg/db/redis"
	"gonotes/pkg/logger"
	"gonotes/pkg/shutdown"
)

// Константы для сообщений хранилища.
const (
	LogStorageMemory   = "using in-memory storage"
	LogStoragePostgres = "using postgres storage"
	LogInitRedis       = "initializing Redis revocation store"
	LogClosingDB       = "closing database connections"
	LogClosingRedis    = "closing Redis connection"

	ErrInitDB    = "failed to initialize database"
	ErrInitRedis = "failed to create Redis client"
)

// storage - хранилища сервиса и хуки их закрытия.
type storage struct {
	notes       repositories.NoteRepository
	users       repositories.UserRepository
	revocations svc.RevocationStore
	closers     []shutdown.Hook
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	log := logger.Log(ctx)

	if cfg.Storage.Driver == config.StorageMemory {
		log.Info(ctx, LogStorageMemory)
		return &storage{
			notes:       memory.NewNoteRepository(nil),
			users:       memory.NewUserRepository(nil),
			revocations: memory.NewRevocationStore(nil),
		}, nil
	}

	log.Info(ctx, LogStoragePostgres)
	database, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInitDB, err)
	}

	log.Info(ctx, LogInitRedis, zap.String("address", cfg.Redis.GetAddress()))
	redisClient, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
	if err != nil {
		_ = database.Close(ctx)
		return nil, fmt.Errorf("%s: %w", ErrInitRedis, err)
	}

	repos := postgres.NewRepositoryFactory(database.Pool())
	return &storage{
		notes:       repos.NoteRepository(),
		users:       repos.UserRepository(),
		revocations: cache.NewRevocationStore(redisClient),
		closers: []shutdown.Hook{
			func(ctx context.Context) error {
				logger.Log(ctx).Info(ctx, LogClosingDB)
				return database.Close(ctx)
			},
			func(ctx context.Context) error {
				logger.Log(ctx).Info(ctx, LogClosingRedis)
				return redisClient.Close(ctx)
			},
		},
	}, nil
}
