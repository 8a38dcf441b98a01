package api

import (
	"context"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
)

// AuthUseCase - регистрация, вход, выход и разрешение токена в вызывающего.
type AuthUseCase interface {
	Register(ctx context.Context, reg entities.Registration) (*services.Session, error)

	Login(ctx context.Context, creds entities.Credentials) (*services.Session, error)

	Logout(ctx context.Context, token string) error

	Authenticate(ctx context.Context, token string) (entities.Caller, error)

	CurrentUser(ctx context.Context, caller entities.Caller) (*entities.User, error)
}
