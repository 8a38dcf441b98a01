// Package auth содержит HTTP-обработчики регистрации, входа и профиля.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/response"
	"gonotes/internal/notes/ports/api"
	"gonotes/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerLogout     = "auth handler: logout"
	LogHandlerGetProfile = "auth handler: get profile"

	// MsgLoggedOut - ответ на успешный выход.
	MsgLoggedOut = "Logged out"
)

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	auth api.AuthUseCase
}

// NewHandler создает обработчик аутентификации.
func NewHandler(auth api.AuthUseCase) *Handler {
	return &Handler{auth: auth}
}

// Register регистрирует пользователя и сразу выдает токен.
func (h *Handler) Register(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Info(ctx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := decode(c, &req); err != nil {
		return response.Error(ctx, c, err)
	}

	session, err := h.auth.Register(ctx, req.Registration())
	if err != nil {
		return response.Error(ctx, c, err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.NewAuthResponse(session))
}

// Login выдает токен по email и паролю.
func (h *Handler) Login(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Info(ctx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := decode(c, &req); err != nil {
		return response.Error(ctx, c, err)
	}

	session, err := h.auth.Login(ctx, req.Credentials())
	if err != nil {
		return response.Error(ctx, c, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewAuthResponse(session))
}

// Logout отзывает токен текущего запроса.
func (h *Handler) Logout(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Info(ctx, LogHandlerLogout, zap.Int64("user_id", middleware.CallerFrom(c).ID))

	if err := h.auth.Logout(ctx, middleware.TokenFrom(c)); err != nil {
		return response.Error(ctx, c, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.MessageResponse{Message: MsgLoggedOut})
}

// Me возвращает профиль вызывающего.
func (h *Handler) Me(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogHandlerGetProfile)

	user, err := h.auth.CurrentUser(ctx, middleware.CallerFrom(c))
	if err != nil {
		return response.Error(ctx, c, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewUser(user))
}

func decode(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().JSON(out); err != nil {
		return fmt.Errorf("%w: %w", response.ErrMalformedBody, err)
	}
	return nil
}

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Статусы проверки состояния.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	healthTimeout = 2 * time.Second
	logHealthFail = "health check failed"
)

// Health отвечает 200, если хранилище доступно, иначе 503.
func Health(storage Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := middleware.RequestContext(c)
		pingCtx, cancel := context.WithTimeout(ctx, healthTimeout)
		defer cancel()

		if err := storage.Ping(pingCtx); err != nil {
			logger.Log(ctx).Warn(ctx, logHealthFail, zap.Error(err))
			return response.JSON(c, fiber.StatusServiceUnavailable, dto.HealthResponse{Status: StatusUnavailable})
		}
		return response.JSON(c, fiber.StatusOK, dto.HealthResponse{Status: StatusOK})
	}
}
