package config

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ShutdownConfig - настройки корректного завершения.
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"NOTES_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Validate проверяет таймаут.
func (c ShutdownConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
	)
}
