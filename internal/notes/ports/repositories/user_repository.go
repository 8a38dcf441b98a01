package repositories

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// UserRepository хранит пользователей.
type UserRepository interface {
	// Create возвращает entities.ErrEmailTaken, если email уже занят.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id int64) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
