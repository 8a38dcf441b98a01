// Package cache хранит отозванные токены доступа в Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	svc "gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

const (
	keyPrefix = "notes:revoked:"

	logMethodRevoke    = "RevocationStore.Revoke"
	logMethodIsRevoked = "RevocationStore.IsRevoked"

	msgTokenRevoked      = "token revoked"
	msgTokenAlreadyStale = "token already expired, nothing to revoke"

	errFailedToRevoke = "failed to store revoked token"
	errFailedToCheck  = "failed to check revoked token"
)

// KeyValueStore - операции Redis, нужные хранилищу отзывов.
type KeyValueStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RevocationStore помечает jti отозванным на оставшийся срок жизни токена.
type RevocationStore struct {
	kv  KeyValueStore
	now func() time.Time
}

var _ svc.RevocationStore = (*RevocationStore)(nil)

// NewRevocationStore создает хранилище поверх kv.
func NewRevocationStore(kv KeyValueStore) *RevocationStore {
	return &RevocationStore{kv: kv, now: time.Now}
}

// Revoke сохраняет tokenID с TTL до until.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	log := logger.Log(ctx).With(zap.String("method", logMethodRevoke), zap.String("jti", tokenID))

	ttl := until.Sub(s.now())
	if ttl <= 0 {
		log.Debug(ctx, msgTokenAlreadyStale)
		return nil
	}

	if err := s.kv.Set(ctx, keyPrefix+tokenID, until.Unix(), ttl); err != nil {
		log.Error(ctx, errFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", errFailedToRevoke, err)
	}

	log.Debug(ctx, msgTokenRevoked, zap.Duration("ttl", ttl))
	return nil
}

// IsRevoked сообщает, есть ли tokenID среди отозванных.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := s.kv.Exists(ctx, keyPrefix+tokenID)
	if err != nil {
		logger.Log(ctx).Error(ctx, errFailedToCheck,
			zap.String("method", logMethodIsRevoked), zap.String("jti", tokenID), zap.Error(err))
		return false, fmt.Errorf("%s: %w", errFailedToCheck, err)
	}
	return exists, nil
}
