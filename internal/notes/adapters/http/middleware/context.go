// Package middleware содержит промежуточное ПО HTTP сервера заметок.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/domain/entities"
)

// Ключи значений запроса.
const (
	localsRequestContext = "requestContext"
	localsCaller         = "caller"
	localsToken          = "accessToken"
)

// RequestContext возвращает контекст запроса с request_id, если его положил NewRequestIDMiddleware.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localsRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// CallerFrom возвращает вызывающего, установленного NewAuthMiddleware.
// Без аутентификации возвращается нулевой вызывающий.
func CallerFrom(c fiber.Ctx) entities.Caller {
	caller, _ := c.Locals(localsCaller).(entities.Caller)
	return caller
}

// TokenFrom возвращает токен доступа текущего запроса.
func TokenFrom(c fiber.Ctx) string {
	token, _ := c.Locals(localsToken).(string)
	return token
}
