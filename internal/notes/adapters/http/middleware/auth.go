package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/response"
	"gonotes/internal/notes/ports/api"
	"gonotes/pkg/apperr"
	"gonotes/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
)

const bearerPrefix = "bearer "

// NewAuthMiddleware проверяет токен доступа и кладет вызывающего в запрос.
// Отсутствующий, неверный, просроченный или отозванный токен дает 401.
func NewAuthMiddleware(auth api.AuthUseCase) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return response.Error(requestCtx, c, fmt.Errorf("%w: %s", apperr.ErrUnauthenticated, ErrorNoAuthHeader))
		}

		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return response.Error(requestCtx, c, fmt.Errorf("%w: %s", apperr.ErrUnauthenticated, ErrorInvalidTokenFormat))
		}
		token := strings.TrimSpace(header[len(bearerPrefix):])

		caller, err := auth.Authenticate(requestCtx, token)
		if err != nil {
			return response.Error(requestCtx, c, err)
		}

		c.Locals(localsCaller, caller)
		c.Locals(localsToken, token)

		return c.Next()
	}
}
