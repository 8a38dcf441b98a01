package memory

import (
	"context"
	"sync"
	"time"

	"gonotes/internal/notes/ports/services"
)

// RevocationStore хранит отозванные идентификаторы токенов до истечения их срока.
type RevocationStore struct {
	mu      sync.Mutex
	now     Clock
	revoked map[string]time.Time
}

var _ services.RevocationStore = (*RevocationStore)(nil)

// NewRevocationStore создает пустое хранилище.
func NewRevocationStore(clock Clock) *RevocationStore {
	if clock == nil {
		clock = time.Now
	}
	return &RevocationStore{now: clock, revoked: make(map[string]time.Time)}
}

// Revoke запоминает tokenID до момента until. Уже истекшие токены не сохраняются.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)
	if until.After(now) {
		s.revoked[tokenID] = until
	}
	return nil
}

// IsRevoked сообщает, отозван ли токен.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(s.now()) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *RevocationStore) evictExpired(now time.Time) {
	for id, until := range s.revoked {
		if !until.After(now) {
			delete(s.revoked, id)
		}
	}
}
