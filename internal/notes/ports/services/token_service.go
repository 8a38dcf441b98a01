// Package services описывает порты вспомогательных сервисов аутентификации.
package services

import (
	"context"
	"time"

	"gonotes/internal/notes/domain/services"
)

// TokenService выпускает и проверяет токены доступа.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID int64) (string, *services.TokenClaims, error)

	ValidateAccessToken(ctx context.Context, token string) (*services.TokenClaims, error)
}

// RevocationStore помнит отозванные токены до истечения их срока.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
