package services

import (
	"errors"
	"fmt"
	"time"

	"gonotes/pkg/apperr"
)

// Ошибки токенов доступа. Все они означают отсутствие аутентификации.
var (
	ErrInvalidJWTToken    = fmt.Errorf("%w: invalid token", apperr.ErrUnauthenticated)
	ErrExpiredJWTToken    = fmt.Errorf("%w: token has expired", apperr.ErrUnauthenticated)
	ErrRevokedJWTToken    = fmt.Errorf("%w: token has been revoked", apperr.ErrUnauthenticated)
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// JWTConfig содержит настройки JWT сервиса.
type JWTConfig struct {
	SecretKey []byte
	Issuer    string
	TokenTTL  time.Duration
}

// TokenClaims - проверенное содержимое токена доступа.
type TokenClaims struct {
	UserID    int64
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
