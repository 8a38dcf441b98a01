// Package cache хранит заметки клиента в разделах по владельцам.
// Изменение через кэш помечает раздел устаревшим, и следующее чтение идет на сервер.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"gonotes/internal/client/api"
	"gonotes/internal/client/session"
	"gonotes/pkg/logger"
)

// Ошибки кэша.
var (
	ErrNoOwner       = errors.New("owner key is empty")
	ErrOwnerMismatch = errors.New("owner key does not match the data or the session")
)

// Константы для сообщений logger.
const (
	msgCacheHit       = "serving cached value"
	msgCacheRead      = "reading through API"
	msgFlightRetry    = "shared read was cancelled, retrying"
	msgInvalidated    = "owner partition invalidated"
	msgMutationFailed = "mutation failed, cache left untouched"
	msgForeignData    = "read returned notes of another owner, result dropped"

	errCtxFetch  = "fetch cancelled"
	errCtxMutate = "mutation failed"
)

// Freshness - состояние записи кэша.
type Freshness int

// Состояния записи.
const (
	Absent Freshness = iota
	Stale
	Loading
	Fresh
)

func (f Freshness) String() string {
	switch f {
	case Stale:
		return "stale"
	case Loading:
		return "loading"
	case Fresh:
		return "fresh"
	default:
		return "absent"
	}
}

// NotesAPI - операции сервера, через которые читает и пишет кэш.
type NotesAPI interface {
	ListNotes(ctx context.Context) ([]api.Note, error)
	GetNote(ctx context.Context, id int64) (*api.Note, error)
	CreateNote(ctx context.Context, in api.NoteInput) (*api.Note, error)
	UpdateNote(ctx context.Context, id int64, in api.NoteInput) (*api.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}

type entry[T any] struct {
	state   Freshness
	value   T
	loading int
}

func (e *entry[T]) freshness() Freshness {
	if e.loading > 0 {
		return Loading
	}
	return e.state
}

type partition struct {
	generation uint64
	list       entry[[]api.Note]
	notes      map[int64]*entry[api.Note]
}

func (p *partition) note(id int64) *entry[api.Note] {
	e, ok := p.notes[id]
	if !ok {
		e = &entry[api.Note]{}
		p.notes[id] = e
	}
	return e
}

// Cache - кэш заметок, разделенный по ключу владельца.
// Одновременные чтения одного раздела объединяются в один запрос.
// Раздел принимает только заметки своего владельца.
type Cache struct {
	api      NotesAPI
	identity func() (string, bool)

	mu      sync.Mutex
	parts   map[string]*partition
	nextGen uint64

	flights singleflight.Group
}

// Option настраивает Cache.
type Option func(*Cache)

// WithSession привязывает кэш к сессии: обращение к разделу другого
// пользователя, пока сессия знает своего, возвращает ErrOwnerMismatch.
func WithSession(sess *session.AuthContext) Option {
	return func(c *Cache) {
		c.identity = sess.OwnerKey
	}
}

// New создает пустой кэш поверх notes.
func New(notes NotesAPI, opts ...Option) *Cache {
	c := &Cache{api: notes, parts: make(map[string]*partition)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// checkOwner проверяет ключ владельца по сессии, если она задана.
func (c *Cache) checkOwner(owner string) error {
	if owner == "" {
		return ErrNoOwner
	}
	if c.identity == nil {
		return nil
	}
	if current, ok := c.identity(); ok && current != owner {
		return fmt.Errorf("%w: session is %s, requested %s", ErrOwnerMismatch, current, owner)
	}
	return nil
}

func ownedBy(owner string, n api.Note) bool {
	return session.OwnerKey(n.OwnerID) == owner
}

// Fetch возвращает заметки владельца: из кэша, если они свежие, иначе с сервера.
func (c *Cache) Fetch(ctx context.Context, owner string) ([]api.Note, error) {
	return load(ctx, c, owner, "list",
		func(p *partition) *entry[[]api.Note] { return &p.list },
		func(ctx context.Context) ([]api.Note, error) {
			notes, err := c.api.ListNotes(ctx)
			if err != nil {
				return nil, fmt.Errorf("list notes: %w", err)
			}
			return notes, nil
		},
		func(notes []api.Note) bool {
			for _, n := range notes {
				if !ownedBy(owner, n) {
					return false
				}
			}
			return true
		},
		cloneNotes,
	)
}

// FetchNote возвращает одну заметку владельца. Записи заметок устаревают вместе с разделом.
func (c *Cache) FetchNote(ctx context.Context, owner string, id int64) (*api.Note, error) {
	note, err := load(ctx, c, owner, "note:"+strconv.FormatInt(id, 10),
		func(p *partition) *entry[api.Note] { return p.note(id) },
		func(ctx context.Context) (api.Note, error) {
			n, err := c.api.GetNote(ctx, id)
			if err != nil {
				return api.Note{}, fmt.Errorf("get note %d: %w", id, err)
			}
			return *n, nil
		},
		func(n api.Note) bool { return ownedBy(owner, n) },
		cloneNote,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Mutate выполняет op. При успехе раздел владельца помечается устаревшим,
// при ошибке кэш не меняется. Если op прерван отменой контекста, исход на сервере
// неизвестен, и раздел тоже помечается устаревшим.
func (c *Cache) Mutate(ctx context.Context, owner string, op func(context.Context) error) error {
	if err := c.checkOwner(owner); err != nil {
		return err
	}

	if err := op(ctx); err != nil {
		if isCanceled(err) {
			c.invalidate(ctx, owner)
		} else {
			logger.Log(ctx).Debug(ctx, msgMutationFailed, zap.String("owner", owner), zap.Error(err))
		}
		return err
	}

	c.invalidate(ctx, owner)
	return nil
}

// Create создает заметку и помечает раздел устаревшим.
func (c *Cache) Create(ctx context.Context, owner string, in api.NoteInput) (*api.Note, error) {
	var created *api.Note
	err := c.Mutate(ctx, owner, func(ctx context.Context) error {
		n, err := c.api.CreateNote(ctx, in)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxMutate, err)
		}
		created = n
		return nil
	})
	return created, err
}

// Update изменяет заметку и помечает раздел устаревшим.
func (c *Cache) Update(ctx context.Context, owner string, id int64, in api.NoteInput) (*api.Note, error) {
	var updated *api.Note
	err := c.Mutate(ctx, owner, func(ctx context.Context) error {
		n, err := c.api.UpdateNote(ctx, id, in)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxMutate, err)
		}
		updated = n
		return nil
	})
	return updated, err
}

// Delete удаляет заметку и помечает раздел устаревшим.
func (c *Cache) Delete(ctx context.Context, owner string, id int64) error {
	return c.Mutate(ctx, owner, func(ctx context.Context) error {
		if err := c.api.DeleteNote(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", errCtxMutate, err)
		}
		return nil
	})
}

// State возвращает состояние списка заметок владельца.
func (c *Cache) State(owner string) Freshness {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.parts[owner]
	if !ok {
		return Absent
	}
	return p.list.freshness()
}

// NoteState возвращает состояние записи одной заметки.
func (c *Cache) NoteState(owner string, id int64) Freshness {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.parts[owner]
	if !ok {
		return Absent
	}
	e, ok := p.notes[id]
	if !ok {
		return Absent
	}
	return e.freshness()
}

// Invalidate помечает раздел владельца устаревшим. Чтения, начатые до этого,
// не сделают его свежим.
func (c *Cache) Invalidate(owner string) {
	c.invalidate(context.Background(), owner)
}

func (c *Cache) invalidate(ctx context.Context, owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.partitionLocked(owner)
	c.nextGen++
	p.generation = c.nextGen
	p.list.state = Stale
	for _, e := range p.notes {
		e.state = Stale
	}

	logger.Log(ctx).Debug(ctx, msgInvalidated, zap.String("owner", owner))
}

// Forget удаляет раздел владельца, например после выхода.
func (c *Cache) Forget(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.parts, owner)
}

func (c *Cache) partitionLocked(owner string) *partition {
	p, ok := c.parts[owner]
	if !ok {
		c.nextGen++
		p = &partition{generation: c.nextGen, notes: make(map[int64]*entry[api.Note])}
		c.parts[owner] = p
	}
	return p
}

// load отдает свежее значение записи или читает его через общий запрос.
// Результат запроса сохраняется, только если он принадлежит владельцу,
// контекст ведущего не отменен и поколение раздела не сменилось.
func load[T any](
	ctx context.Context,
	c *Cache,
	owner, name string,
	slot func(*partition) *entry[T],
	read func(context.Context) (T, error),
	owned func(T) bool,
	clone func(T) T,
) (T, error) {
	var zero T
	if err := c.checkOwner(owner); err != nil {
		return zero, err
	}

	log := logger.Log(ctx).With(zap.String("owner", owner), zap.String("entry", name))

	for {
		c.mu.Lock()
		p := c.partitionLocked(owner)
		e := slot(p)
		if e.state == Fresh {
			v := clone(e.value)
			c.mu.Unlock()
			log.Debug(ctx, msgCacheHit)
			return v, nil
		}

		gen := p.generation
		e.loading++
		key := owner + "|" + strconv.FormatUint(gen, 10) + "|" + name
		ch := c.flights.DoChan(key, func() (any, error) {
			log.Debug(ctx, msgCacheRead)
			v, err := read(ctx)
			if err != nil {
				return nil, err
			}
			if !owned(v) {
				log.Warn(ctx, msgForeignData)
				return nil, fmt.Errorf("%w: %s", ErrOwnerMismatch, name)
			}

			c.mu.Lock()
			if ctx.Err() == nil && c.parts[owner] == p && p.generation == gen {
				e.value = clone(v)
				e.state = Fresh
			}
			c.mu.Unlock()
			return v, nil
		})
		c.mu.Unlock()

		release := func() {
			c.mu.Lock()
			e.loading--
			c.mu.Unlock()
		}

		var res singleflight.Result
		select {
		case res = <-ch:
		case <-ctx.Done():
			release()
			return zero, fmt.Errorf("%s: %w", errCtxFetch, ctx.Err())
		}
		release()

		if res.Err != nil {
			if isCanceled(res.Err) && ctx.Err() == nil {
				log.Debug(ctx, msgFlightRetry)
				continue
			}
			return zero, res.Err
		}
		v, _ := res.Val.(T)
		return clone(v), nil
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func cloneNote(n api.Note) api.Note {
	if n.Body != nil {
		body := *n.Body
		n.Body = &body
	}
	return n
}

func cloneNotes(notes []api.Note) []api.Note {
	out := make([]api.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, cloneNote(n))
	}
	return out
}
