// Package memory хранит заметки, пользователей и отозванные токены в памяти процесса.
// Используется драйвером хранилища memory и в тестах.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
)

// Clock возвращает текущее время.
type Clock func() time.Time

// NoteRepository - потокобезопасное хранилище заметок.
type NoteRepository struct {
	mu     sync.RWMutex
	now    Clock
	nextID int64
	notes  map[int64]entities.Note
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает пустое хранилище. Пустой clock заменяется на time.Now.
func NewNoteRepository(clock Clock) *NoteRepository {
	if clock == nil {
		clock = time.Now
	}
	return &NoteRepository{now: clock, notes: make(map[int64]entities.Note)}
}

// Create сохраняет заметку с новым ID.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now().UTC()
	stored := entities.Note{
		ID:        r.nextID,
		OwnerID:   note.OwnerID,
		Title:     note.Title,
		Body:      copyBody(note.Body),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.notes[stored.ID] = stored
	return cloneNote(stored), nil
}

// GetByID возвращает копию заметки.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	return cloneNote(note), nil
}

// ListByOwner возвращает заметки владельца по убыванию created_at, затем id.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Note, 0)
	for _, note := range r.notes {
		if note.OwnerID == ownerID {
			out = append(out, cloneNote(note))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Update записывает заголовок и текст. UpdatedAt строго растет даже при неизменных часах.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.notes[note.ID]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}

	now := r.now().UTC()
	if !now.After(stored.UpdatedAt) {
		now = stored.UpdatedAt.Add(time.Microsecond)
	}
	stored.Title = note.Title
	stored.Body = copyBody(note.Body)
	stored.UpdatedAt = now
	r.notes[stored.ID] = stored
	return cloneNote(stored), nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return entities.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

// Ping всегда успешен.
func (r *NoteRepository) Ping(context.Context) error {
	return nil
}

func cloneNote(n entities.Note) *entities.Note {
	n.Body = copyBody(n.Body)
	return &n
}

func copyBody(body *string) *string {
	if body == nil {
		return nil
	}
	b := *body
	return &b
}
