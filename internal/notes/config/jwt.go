package config

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gonotes/internal/notes/domain/services"
)

// MinSecretKeyLength минимальная длина ключа подписи HS256.
const MinSecretKeyLength = 32

// JWTConfig - настройки токенов доступа и хеширования паролей.
type JWTConfig struct {
	SecretKey  string        `yaml:"secret_key" env:"NOTES_JWT_SECRET_KEY" env-default:"2hlsdwbzmv7yGxbQ4sIah/MuvvNoe889pbEzZql0SU8n3U1gYi29gZnFQKxiUdGH"`
	Issuer     string        `yaml:"issuer" env:"NOTES_JWT_ISSUER" env-default:"gonotes"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"NOTES_JWT_TOKEN_TTL" env-default:"24h"`
	BCryptCost int           `yaml:"bcrypt_cost" env:"NOTES_BCRYPT_COST" env-default:"10"`
}

// ServiceConfig переводит настройки в доменную конфигурацию JWT.
func (c JWTConfig) ServiceConfig() services.JWTConfig {
	return services.JWTConfig{
		SecretKey: []byte(c.SecretKey),
		Issuer:    c.Issuer,
		TokenTTL:  c.TokenTTL,
	}
}

// Validate проверяет ключ и срок жизни токена.
func (c JWTConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SecretKey, validation.Required, validation.Length(MinSecretKeyLength, 0)),
		validation.Field(&c.TokenTTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.BCryptCost, validation.Min(4), validation.Max(31)),
	)
}
