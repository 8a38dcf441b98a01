// Package db подключает сервис заметок к Postgres и применяет миграции схемы.
package db

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gonotes/internal/notes/config"
	"gonotes/pkg/db/postgres"
	"gonotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing notes database"
	LogDBInitialized     = "notes database initialized successfully"
	LogMigrationStarting = "starting database migrations for notes service"
	LogMigrationSkipped  = "automatic migrations disabled"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply notes database migrations"
	ErrDBConnection      = "failed to connect to notes database"
	ErrGetPath           = "failed to get path"
	ErrDBCheckConnection = "error checking the database connection"
)

const filePrefix = "file://"

// DB представляет соединение с базой данных сервиса заметок.
type DB struct {
	database *postgres.Database
}

// New применяет миграции, если они включены, и открывает пул соединений.
func New(ctx context.Context, cfg config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx).With(zap.String("method", "db.New"))

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int32("min_conn", cfg.MinConn),
		zap.Int32("max_conn", cfg.MaxConn))

	if cfg.AutoMigrate {
		migrationsPath, err := MigrationsSource(cfg.MigrationsPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
		}

		log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
		if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
		}
	} else {
		log.Info(ctx, LogMigrationSkipped)
	}

	database, err := postgres.New(ctx, cfg.GetConnectionURL(), cfg.PoolOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// MigrationsSource переводит каталог миграций в абсолютный file:// URL.
func MigrationsSource(dir string) (string, error) {
	if strings.HasPrefix(dir, filePrefix) {
		return dir, nil
	}
	if filepath.IsAbs(dir) {
		return filePrefix + dir, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return filePrefix + absPath, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) error {
	return db.database.Close(ctx) //nolint:wrapcheck
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
