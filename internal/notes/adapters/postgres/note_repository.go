package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

const noteColumns = `id, owner_id, title, body, created_at, updated_at`

const (
	queryCreateNote = `
        INSERT INTO notes (owner_id, title, body)
        VALUES ($1, $2, $3)
        RETURNING ` + noteColumns

	queryGetNote = `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE id = $1`

	queryListNotes = `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE owner_id = $1
        ORDER BY created_at DESC, id DESC`

	// updated_at строго растет, даже если часы сервера БД не сдвинулись.
	queryUpdateNote = `
        UPDATE notes
        SET title = $2,
            body = $3,
            updated_at = GREATEST(now(), updated_at + interval '1 microsecond')
        WHERE id = $1
        RETURNING ` + noteColumns

	queryDeleteNote = `DELETE FROM notes WHERE id = $1`
)

// NoteRepository хранит заметки в таблице notes.
type NoteRepository struct {
	pool PgxPoolInterface
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create вставляет заметку.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))

	created, err := scanNote(r.pool.QueryRow(ctx, queryCreateNote, note.OwnerID, note.Title, note.Body))
	if err != nil {
		log.Error(ctx, "error creating note", zap.Error(err))
		return nil, fmt.Errorf("error inserting note: %w", err)
	}
	return created, nil
}

// GetByID находит заметку по ID.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "GetByID"))

	note, err := scanNote(r.pool.QueryRow(ctx, queryGetNote, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("id", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "error finding note by id", zap.Error(err))
		return nil, fmt.Errorf("error querying note by id: %w", err)
	}
	return note, nil
}

// ListByOwner возвращает заметки владельца от новых к старым.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByOwner"))

	rows, err := r.pool.Query(ctx, queryListNotes, ownerID)
	if err != nil {
		log.Error(ctx, "error listing notes", zap.Error(err))
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "error scanning note", zap.Error(err))
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating notes", zap.Error(err))
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

// Update записывает заголовок и текст заметки.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))

	updated, err := scanNote(r.pool.QueryRow(ctx, queryUpdateNote, note.ID, note.Title, note.Body))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found for update", zap.Int64("id", note.ID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "error updating note", zap.Error(err))
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return updated, nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))

	tag, err := r.pool.Exec(ctx, queryDeleteNote, id)
	if err != nil {
		log.Error(ctx, "error deleting note", zap.Error(err))
		return fmt.Errorf("error deleting note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "note not found for delete", zap.Int64("id", id))
		return entities.ErrNoteNotFound
	}
	return nil
}

// Ping проверяет соединение с базой.
func (r *NoteRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("error pinging database: %w", err)
	}
	return nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	if err := row.Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Body,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &note, nil
}
