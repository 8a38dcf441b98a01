package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gonotes/pkg/logger"
)

// LoggingConfig - настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"production"`
}

// GetEnvironment возвращает режим работы логгера.
func (c LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == string(logger.Development) {
		return logger.Development
	}
	return logger.Production
}

// Validate проверяет режим и уровень.
func (c LoggingConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Mode, validation.In(string(logger.Development), string(logger.Production))),
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "warning", "error")),
	)
}
