package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RateLimitConfig - ограничение частоты запросов регистрации и входа с одного IP.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" env:"NOTES_RATE_LIMIT_ENABLED" env-default:"true"`
	RPS     float64 `yaml:"rps" env:"NOTES_RATE_LIMIT_RPS" env-default:"1" env-description:"sustained auth requests per second per IP"`
	Burst   int     `yaml:"burst" env:"NOTES_RATE_LIMIT_BURST" env-default:"5"`
}

// Validate проверяет параметры ограничителя.
func (c RateLimitConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.RPS, validation.When(c.Enabled, validation.Required, validation.Min(0.001))),
		validation.Field(&c.Burst, validation.When(c.Enabled, validation.Required, validation.Min(1))),
	)
}
