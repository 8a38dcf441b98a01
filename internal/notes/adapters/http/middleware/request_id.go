package middleware

import (
	"github.com/gofiber/fiber/v3"

	"gonotes/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор из заголовка или генерирует новый
// и возвращает его клиенту.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := logger.NewRequestIDContext(c.Context(), c.Get(HeaderRequestID))
		if id, ok := logger.GetRequestID(ctx); ok {
			c.Set(HeaderRequestID, id)
		}
		c.Locals(localsRequestContext, ctx)
		return c.Next()
	}
}
