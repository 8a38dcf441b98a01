package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
	"gonotes/internal/notes/ports/api"
	"gonotes/internal/notes/ports/repositories"
	svc "gonotes/internal/notes/ports/services"
	"gonotes/pkg/apperr"
	"gonotes/pkg/logger"
)

const (
	methodRegister     = "AuthUseCase.Register"
	methodLogin        = "AuthUseCase.Login"
	methodLogout       = "AuthUseCase.Logout"
	methodAuthenticate = "AuthUseCase.Authenticate"
	methodCurrentUser  = "AuthUseCase.CurrentUser"
	methodIssueSession = "AuthUseCase.issueSession"

	msgStartRegistration   = "starting user registration"
	msgInvalidRegistration = "invalid registration data"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgInvalidCredentials  = "invalid login data"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgUserLoggedOut       = "user logged out successfully"
	msgRevokedTokenAttempt = "attempt to use revoked token"
	msgTokenIssued         = "access token issued"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateToken     = "failed to generate access token"
	msgErrRevokingToken     = "failed to revoke token"
	msgErrCheckingRevoked   = "failed to check token revocation"

	errCtxValidatingRegistration = "validating registration"
	errCtxValidatingCredentials  = "validating credentials"
	errCtxCheckingUser           = "checking existing user"
	errCtxEmailRegistered        = "email already registered"
	errCtxHashingPassword        = "hashing password"
	errCtxCreatingUser           = "creating user"
	errCtxInvalidCredentials     = "invalid credentials"
	errCtxFindingUser            = "finding user"
	errCtxVerifyingPassword      = "verifying password"
	errCtxGeneratingToken        = "generating token"
	errCtxValidatingToken        = "validating token"
	errCtxRevokingToken          = "revoking token"
	errCtxCheckingRevocation     = "checking token revocation"
)

// AuthUseCase регистрирует пользователей, выдает и отзывает токены доступа.
type AuthUseCase struct {
	users       repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	revocations svc.RevocationStore
}

var _ api.AuthUseCase = (*AuthUseCase)(nil)

// NewAuthUseCase создает AuthUseCase.
func NewAuthUseCase(
	users repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	revocations svc.RevocationStore,
) *AuthUseCase {
	return &AuthUseCase{
		users:       users,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		revocations: revocations,
	}
}

// Register создает пользователя и сразу выдает ему токен.
func (a *AuthUseCase) Register(ctx context.Context, reg entities.Registration) (*services.Session, error) {
	reg = reg.Normalize()
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", reg.Email))
	log.Debug(ctx, msgStartRegistration)

	if err := reg.Validate(); err != nil {
		log.Debug(ctx, msgInvalidRegistration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRegistration, err)
	}

	existing, err := a.users.FindByEmail(ctx, reg.Email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailTaken)
	}

	hash, err := a.passwordSvc.Hash(ctx, reg.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user, err := a.users.Create(ctx, &entities.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			log.Debug(ctx, msgEmailExists)
		} else {
			log.Error(ctx, msgErrCreateUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.Int64("user_id", user.ID))
	return a.issueSession(ctx, user)
}

// Login проверяет email и пароль и выдает токен.
func (a *AuthUseCase) Login(ctx context.Context, creds entities.Credentials) (*services.Session, error) {
	creds = creds.Normalize()
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", creds.Email))
	log.Debug(ctx, msgLoginAttempt)

	if err := creds.Validate(); err != nil {
		log.Debug(ctx, msgInvalidCredentials, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingCredentials, err)
	}

	user, err := a.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, creds.Password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.Int64("user_id", user.ID))
	return a.issueSession(ctx, user)
}

// Logout отзывает токен до истечения его срока действия.
func (a *AuthUseCase) Logout(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))

	claims, err := a.tokenSvc.ValidateAccessToken(ctx, token)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}
	log = log.With(zap.Int64("user_id", claims.UserID))

	if err := a.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		log.Error(ctx, msgErrRevokingToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// Authenticate проверяет токен и возвращает вызывающего.
func (a *AuthUseCase) Authenticate(ctx context.Context, token string) (entities.Caller, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	claims, err := a.tokenSvc.ValidateAccessToken(ctx, token)
	if err != nil {
		return entities.Caller{}, fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}

	revoked, err := a.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error(ctx, msgErrCheckingRevoked, zap.Error(err))
		return entities.Caller{}, fmt.Errorf("%s: %w", errCtxCheckingRevocation, err)
	}
	if revoked {
		log.Debug(ctx, msgRevokedTokenAttempt, zap.Int64("user_id", claims.UserID))
		return entities.Caller{}, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrRevokedJWTToken)
	}

	return entities.Caller{ID: claims.UserID}, nil
}

// CurrentUser возвращает пользователя вызывающего.
// Пользователь, удаленный после выдачи токена, считается неаутентифицированным.
func (a *AuthUseCase) CurrentUser(ctx context.Context, caller entities.Caller) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCurrentUser), zap.Int64("user_id", caller.ID))

	if err := requireCaller(ctx, log, caller); err != nil {
		return nil, err
	}

	user, err := a.users.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxFindingUser, apperr.ErrUnauthenticated)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	return user, nil
}

func (a *AuthUseCase) issueSession(ctx context.Context, user *entities.User) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssueSession), zap.Int64("user_id", user.ID))

	token, claims, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expires_at", claims.ExpiresAt))
	return &services.Session{User: user, Token: token, ExpiresAt: claims.ExpiresAt}, nil
}
