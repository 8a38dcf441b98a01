package memory

import (
	"context"
	"sync"
	"time"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
)

// UserRepository - потокобезопасное хранилище пользователей с уникальным email без учета регистра.
type UserRepository struct {
	mu      sync.RWMutex
	now     Clock
	nextID  int64
	users   map[int64]entities.User
	byEmail map[string]int64
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает пустое хранилище.
func NewUserRepository(clock Clock) *UserRepository {
	if clock == nil {
		clock = time.Now
	}
	return &UserRepository{
		now:     clock,
		users:   make(map[int64]entities.User),
		byEmail: make(map[string]int64),
	}
}

// Create сохраняет пользователя или возвращает entities.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := entities.NormalizeEmail(user.Email)
	if _, taken := r.byEmail[key]; taken {
		return nil, entities.ErrEmailTaken
	}

	r.nextID++
	now := r.now().UTC()
	stored := *user
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.users[stored.ID] = stored
	r.byEmail[key] = stored.ID
	return &stored, nil
}

// FindByID возвращает пользователя или entities.ErrUserNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return &user, nil
}

// FindByEmail ищет пользователя по email без учета регистра.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[entities.NormalizeEmail(email)]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	user := r.users[id]
	return &user, nil
}
