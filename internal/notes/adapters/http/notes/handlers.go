// Package notes содержит HTTP-обработчики заметок.
package notes

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/response"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/api"
	"gonotes/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	// MsgNoteDeleted - ответ на успешное удаление.
	MsgNoteDeleted = "Note Deleted"
)

// Handler обрабатывает HTTP-запросы к заметкам.
type Handler struct {
	notes api.NoteUseCase
}

// NewHandler создает обработчик заметок.
func NewHandler(notes api.NoteUseCase) *Handler {
	return &Handler{notes: notes}
}

// List возвращает заметки вызывающего.
func (h *Handler) List(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).With(zap.String("handler", "Handler.List")).Debug(ctx, LogHandlerListNotes)

	notes, err := h.notes.List(ctx, middleware.CallerFrom(c))
	if err != nil {
		return response.Error(ctx, c, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewNotes(notes))
}

// Create создает заметку вызывающего.
func (h *Handler) Create(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).With(zap.String("handler", "Handler.Create")).Debug(ctx, LogHandlerCreateNote)

	input, err := decodeNote(c)
	if err != nil {
		return response.Error(ctx, c, err)
	}

	note, err := h.notes.Create(ctx, middleware.CallerFrom(c), input)
	if err != nil {
		return response.Error(ctx, c, err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.NewNote(note))
}

// Get возвращает одну заметку.
func (h *Handler) Get(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).With(zap.String("handler", "Handler.Get")).Debug(ctx, LogHandlerGetNote)

	id, err := noteID(c)
	if err != nil {
		return response.Error(ctx, c, err)
	}

	note, err := h.notes.Get(ctx, middleware.CallerFrom(c), id)
	if err != nil {
		return response.Error(ctx, c, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewNote(note))
}

// Update изменяет заголовок и, если передано, тело заметки.
func (h *Handler) Update(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).With(zap.String("handler", "Handler.Update")).Debug(ctx, LogHandlerUpdateNote)

	id, err := noteID(c)
	if err != nil {
		return response.Error(ctx, c, err)
	}

	input, err := decodeNote(c)
	if err != nil {
		return response.Error(ctx, c, err)
	}

	note, err := h.notes.Update(ctx, middleware.CallerFrom(c), id, input)
	if err != nil {
		return response.Error(ctx, c, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewNote(note))
}

// Delete удаляет заметку и отвечает подтверждением.
func (h *Handler) Delete(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).With(zap.String("handler", "Handler.Delete")).Debug(ctx, LogHandlerDeleteNote)

	id, err := noteID(c)
	if err != nil {
		return response.Error(ctx, c, err)
	}

	if err := h.notes.Delete(ctx, middleware.CallerFrom(c), id); err != nil {
		return response.Error(ctx, c, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.MessageResponse{Message: MsgNoteDeleted})
}

// noteID разбирает идентификатор из пути. Нечисловой идентификатор означает отсутствующую заметку.
func noteID(c fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, entities.ErrNoteNotFound
	}
	return id, nil
}

// decodeNote разбирает тело запроса. Пустое тело равносильно пустому объекту.
func decodeNote(c fiber.Ctx) (entities.NoteInput, error) {
	var req dto.NoteRequest
	if len(c.Body()) == 0 {
		return req.Input(), nil
	}
	if err := c.Bind().JSON(&req); err != nil {
		return entities.NoteInput{}, fmt.Errorf("%w: %w", response.ErrMalformedBody, err)
	}
	return req.Input(), nil
}
