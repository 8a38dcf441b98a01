// Package services описывает доменные типы и ошибки аутентификации.
package services

import (
	"errors"
	"fmt"
	"time"

	"gonotes/internal/notes/domain/entities"
	"gonotes/pkg/apperr"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// Session - результат успешной регистрации или входа.
type Session struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}
