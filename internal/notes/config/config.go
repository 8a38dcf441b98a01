// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"gonotes/pkg/apperr"
	pkgconfig "gonotes/pkg/config"
	"gonotes/pkg/logger"
)

const (
	serviceName = "notes"

	// EnvConfigPath задает путь к необязательному файлу конфигурации.
	EnvConfigPath = "NOTES_CONFIG_PATH"

	logConfigLoaded = "notes configuration"
	errLoadConfig   = "failed to load notes configuration"
)

// Драйверы хранилища.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config - полная конфигурация сервиса заметок.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   StorageConfig   `yaml:"storage"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
}

// StorageConfig выбирает хранилище данных.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"NOTES_STORAGE_DRIVER" env-default:"postgres" env-description:"storage driver: postgres or memory"`
}

// Load читает конфигурацию из окружения и файла из NOTES_CONFIG_PATH, если он задан.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, logConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("token_ttl", cfg.JWT.TokenTTL),
		zap.Duration("shutdown_timeout", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Usage описывает переменные окружения сервиса.
func Usage() string {
	return pkgconfig.Usage[Config]("Notes service environment variables:")
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.HTTP),
		validation.Field(&c.Storage),
		validation.Field(&c.Postgres, validation.Skip.When(c.Storage.Driver != StoragePostgres)),
		validation.Field(&c.Redis, validation.Skip.When(c.Storage.Driver != StoragePostgres)),
		validation.Field(&c.JWT),
		validation.Field(&c.RateLimit),
		validation.Field(&c.Logging),
		validation.Field(&c.Shutdown),
	)
	return apperr.FromValidation(err)
}

// Validate проверяет драйвер хранилища.
func (c StorageConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required, validation.In(StorageMemory, StoragePostgres)),
	)
}
