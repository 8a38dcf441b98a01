// Package api описывает входные порты сервиса заметок.
package api

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// NoteUseCase - операции над заметками от имени явно переданного вызывающего.
type NoteUseCase interface {
	List(ctx context.Context, caller entities.Caller) ([]*entities.Note, error)

	Create(ctx context.Context, caller entities.Caller, input entities.NoteInput) (*entities.Note, error)

	Get(ctx context.Context, caller entities.Caller, id int64) (*entities.Note, error)

	Update(ctx context.Context, caller entities.Caller, id int64, input entities.NoteInput) (*entities.Note, error)

	Delete(ctx context.Context, caller entities.Caller, id int64) error
}
