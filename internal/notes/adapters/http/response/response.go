// Package response переводит ошибки сценариев в HTTP-ответы.
package response

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
	"gonotes/pkg/apperr"
	"gonotes/pkg/logger"
)

// ErrMalformedBody - тело запроса не удалось разобрать.
var ErrMalformedBody = errors.New("malformed request body")

// Тексты сообщений в ответах.
const (
	MsgInvalidData        = "The given data was invalid."
	MsgMalformedBody      = "Malformed request body."
	MsgUnauthenticated    = "Unauthenticated."
	MsgInvalidCredentials = "These credentials do not match our records."
	MsgForbidden          = "Forbidden"
	MsgNoteNotFound       = "Note not found"
	MsgNotFound           = "Not Found"
	MsgEmailTaken         = "The email has already been taken."
	MsgConflict           = "Conflict"
	MsgTooManyRequests    = "Too Many Attempts."
	MsgServerError        = "Server Error"

	logRequestRejected = "request rejected"
	logRequestFailed   = "request failed"
	errSendResponse    = "error sending response"
)

// Describe возвращает статус и тело ответа для ошибки.
func Describe(err error) (int, dto.ErrorResponse) {
	var validationErr *apperr.ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Message: MsgInvalidData, Errors: validationErr.Fields}
	case errors.Is(err, ErrMalformedBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Message: MsgMalformedBody}
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Message: MsgInvalidCredentials}
	case errors.Is(err, apperr.ErrUnauthenticated):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Message: MsgUnauthenticated}
	case errors.Is(err, apperr.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Message: MsgForbidden}
	case errors.Is(err, entities.ErrNoteNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Message: MsgNoteNotFound}
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Message: MsgNotFound}
	case errors.Is(err, entities.ErrEmailTaken):
		return fiber.StatusConflict, dto.ErrorResponse{
			Message: MsgEmailTaken,
			Errors:  map[string][]string{"email": {MsgEmailTaken}},
		}
	case errors.Is(err, apperr.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Message: MsgConflict}
	case errors.Is(err, apperr.ErrRateLimited):
		return fiber.StatusTooManyRequests, dto.ErrorResponse{Message: MsgTooManyRequests}
	case errors.As(err, &fiberErr):
		return fiberErr.Code, dto.ErrorResponse{Message: fiberErr.Message}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Message: MsgServerError}
	}
}

// Error пишет ответ об ошибке. Ошибки уровня 5xx логируются как error, остальные как debug.
func Error(ctx context.Context, c fiber.Ctx, err error) error {
	status, body := Describe(err)

	log := logger.Log(ctx).With(zap.String("path", c.Path()), zap.Int("status", status))
	if status >= fiber.StatusInternalServerError {
		log.Error(ctx, logRequestFailed, zap.Error(err))
	} else {
		log.Debug(ctx, logRequestRejected, zap.Error(err))
	}

	return JSON(c, status, body)
}

// JSON пишет тело с заданным статусом.
func JSON(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("%s: %w", errSendResponse, err)
	}
	return nil
}
