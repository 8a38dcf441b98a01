package config

import (
	"fmt"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gonotes/pkg/db/postgres"
)

// PostgresConfig - настройки подключения к Postgres.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"NOTES_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"NOTES_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"NOTES_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"NOTES_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"NOTES_POSTGRES_DB" env-default:"notes"`
	SSLMode         string        `yaml:"ssl_mode" env:"NOTES_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn         int32         `yaml:"min_conn" env:"NOTES_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int32         `yaml:"max_conn" env:"NOTES_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"NOTES_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"NOTES_POSTGRES_CONNECT_TIMEOUT" env-default:"5s"`
	MigrationsPath  string        `yaml:"migrations_path" env:"NOTES_POSTGRES_MIGRATIONS_PATH" env-default:"migrations/notes"`
	AutoMigrate     bool          `yaml:"auto_migrate" env:"NOTES_POSTGRES_AUTO_MIGRATE" env-default:"true"`
}

// GetConnectionURL возвращает URL подключения, пригодный и для pgx, и для миграций.
func (c PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// PoolOptions возвращает параметры пула.
func (c PostgresConfig) PoolOptions() postgres.Options {
	return postgres.Options{
		MinConns:        c.MinConn,
		MaxConns:        c.MaxConn,
		MaxConnLifetime: c.MaxConnLifetime,
		ConnectTimeout:  c.ConnectTimeout,
	}
}

// Validate проверяет параметры подключения.
func (c PostgresConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.User, validation.Required),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.MaxConn, validation.Required, validation.Min(c.MinConn)),
		validation.Field(&c.MigrationsPath, validation.When(c.AutoMigrate, validation.Required)),
	)
}
