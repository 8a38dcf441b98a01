// Package repositories описывает порты хранилищ сервиса заметок.
package repositories

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// NoteRepository хранит заметки. Методы не проверяют владельца, это делает слой приложения.
type NoteRepository interface {
	// Create сохраняет заметку и возвращает ее с назначенными ID и временем.
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)

	// GetByID возвращает заметку или entities.ErrNoteNotFound.
	GetByID(ctx context.Context, id int64) (*entities.Note, error)

	// ListByOwner возвращает заметки владельца от новых к старым.
	ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Note, error)

	// Update записывает Title и Body, продвигает UpdatedAt и возвращает сохраненную заметку.
	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)

	// Delete удаляет заметку или возвращает entities.ErrNoteNotFound.
	Delete(ctx context.Context, id int64) error

	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
}
