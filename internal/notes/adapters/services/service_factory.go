package services

import (
	"gonotes/internal/notes/domain/services"
	svc "gonotes/internal/notes/ports/services"
)

// ServiceFactory собирает сервисы аутентификации из конфигурации.
type ServiceFactory struct {
	passwordService svc.PasswordService
	tokenService    svc.TokenService
}

// NewServiceFactory создает фабрику сервисов.
func NewServiceFactory(jwtConfig services.JWTConfig, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtConfig),
	}
}

// PasswordService возвращает сервис паролей.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис токенов.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenService
}
