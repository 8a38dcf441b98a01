// Package app реализует бизнес-логику сервиса заметок.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/api"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/apperr"
	"gonotes/pkg/logger"
)

const (
	methodList   = "NoteUseCase.List"
	methodCreate = "NoteUseCase.Create"
	methodGet    = "NoteUseCase.Get"
	methodUpdate = "NoteUseCase.Update"
	methodDelete = "NoteUseCase.Delete"

	msgNotesFetched      = "notes fetched for user"
	msgNoteCreated       = "note created"
	msgNoteUpdated       = "note updated"
	msgNoteDeleted       = "note deleted"
	msgInvalidNoteInput  = "invalid note input"
	msgForeignNoteAccess = "attempt to access note of another user"
	msgUnauthenticated   = "operation without authenticated caller"

	msgErrListNotes  = "failed to list notes"
	msgErrCreateNote = "failed to create note"
	msgErrGetNote    = "failed to get note"
	msgErrUpdateNote = "failed to update note"
	msgErrDeleteNote = "failed to delete note"

	errCtxCaller         = "checking caller"
	errCtxValidatingNote = "validating note"
	errCtxListingNotes   = "listing notes"
	errCtxCreatingNote   = "creating note"
	errCtxLoadingNote    = "loading note"
	errCtxAuthorizing    = "authorizing note access"
	errCtxUpdatingNote   = "updating note"
	errCtxDeletingNote   = "deleting note"
)

// NoteUseCase выполняет операции над заметками с проверкой владельца.
type NoteUseCase struct {
	notes repositories.NoteRepository
}

var _ api.NoteUseCase = (*NoteUseCase)(nil)

// NewNoteUseCase создает NoteUseCase.
func NewNoteUseCase(notes repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{notes: notes}
}

// List возвращает заметки вызывающего от новых к старым.
func (uc *NoteUseCase) List(ctx context.Context, caller entities.Caller) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodList), zap.Int64("user_id", caller.ID))

	if err := requireCaller(ctx, log, caller); err != nil {
		return nil, err
	}

	notes, err := uc.notes.ListByOwner(ctx, caller.ID)
	if err != nil {
		log.Error(ctx, msgErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}
	if notes == nil {
		notes = []*entities.Note{}
	}

	log.Info(ctx, msgNotesFetched, zap.Int("notes_count", len(notes)), zap.Int64s("note_ids", noteIDs(notes)))
	return notes, nil
}

// Create создает заметку, владельцем которой становится вызывающий.
func (uc *NoteUseCase) Create(ctx context.Context, caller entities.Caller, input entities.NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate), zap.Int64("user_id", caller.ID))

	if err := requireCaller(ctx, log, caller); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		log.Debug(ctx, msgInvalidNoteInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, err)
	}

	note, err := uc.notes.Create(ctx, &entities.Note{
		OwnerID: caller.ID,
		Title:   input.Title,
		Body:    entities.NormalizeBody(input.Body),
	})
	if err != nil {
		log.Error(ctx, msgErrCreateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	log.Info(ctx, msgNoteCreated, zap.Int64("note_id", note.ID), zap.String("title", note.Title))
	return note, nil
}

// Get возвращает заметку, если она существует и принадлежит вызывающему.
func (uc *NoteUseCase) Get(ctx context.Context, caller entities.Caller, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGet), zap.Int64("user_id", caller.ID), zap.Int64("note_id", id))

	note, err := uc.authorize(ctx, log, caller, id)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Update меняет заголовок и, если он передан (в том числе как null), текст заметки вызывающего.
func (uc *NoteUseCase) Update(ctx context.Context, caller entities.Caller, id int64, input entities.NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdate), zap.Int64("user_id", caller.ID), zap.Int64("note_id", id))

	note, err := uc.authorize(ctx, log, caller, id)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		log.Debug(ctx, msgInvalidNoteInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, err)
	}

	note.Title = input.Title
	if input.ChangesBody() {
		note.Body = entities.NormalizeBody(input.Body)
	}

	updated, err := uc.notes.Update(ctx, note)
	if err != nil {
		log.Error(ctx, msgErrUpdateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	log.Info(ctx, msgNoteUpdated)
	return updated, nil
}

// Delete удаляет заметку вызывающего.
func (uc *NoteUseCase) Delete(ctx context.Context, caller entities.Caller, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDelete), zap.Int64("user_id", caller.ID), zap.Int64("note_id", id))

	if _, err := uc.authorize(ctx, log, caller, id); err != nil {
		return err
	}

	if err := uc.notes.Delete(ctx, id); err != nil {
		log.Error(ctx, msgErrDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	log.Info(ctx, msgNoteDeleted)
	return nil
}

// authorize загружает заметку и проверяет владельца.
// Отсутствующая заметка дает ErrNoteNotFound, чужая - ErrNoteForbidden.
func (uc *NoteUseCase) authorize(ctx context.Context, log *logger.Logger, caller entities.Caller, id int64) (*entities.Note, error) {
	if err := requireCaller(ctx, log, caller); err != nil {
		return nil, err
	}

	note, err := uc.notes.GetByID(ctx, id)
	if err != nil {
		if !isNotFound(err) {
			log.Error(ctx, msgErrGetNote, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxLoadingNote, err)
	}

	if !note.OwnedBy(caller) {
		log.Warn(ctx, msgForeignNoteAccess, zap.Int64("owner_id", note.OwnerID))
		return nil, fmt.Errorf("%s: %w", errCtxAuthorizing, entities.ErrNoteForbidden)
	}
	return note, nil
}

func requireCaller(ctx context.Context, log *logger.Logger, caller entities.Caller) error {
	if caller.Valid() {
		return nil
	}
	log.Warn(ctx, msgUnauthenticated)
	return fmt.Errorf("%s: %w", errCtxCaller, apperr.ErrUnauthenticated)
}

func noteIDs(notes []*entities.Note) []int64 {
	ids := make([]int64, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}

func isNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}
