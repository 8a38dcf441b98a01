// Package entities описывает доменные сущности сервиса заметок.
package entities

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gonotes/pkg/apperr"
)

// MaxTitleLength максимальная длина заголовка в символах.
const MaxTitleLength = 255

// Ошибки домена заметок.
var (
	ErrNoteNotFound  = fmt.Errorf("note %w", apperr.ErrNotFound)
	ErrNoteForbidden = fmt.Errorf("%w: note belongs to another user", apperr.ErrForbidden)
)

// Note - заметка, принадлежащая ровно одному пользователю.
// ID, CreatedAt и UpdatedAt назначает хранилище.
type Note struct {
	ID        int64
	OwnerID   int64
	Title     string
	Body      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy сообщает, принадлежит ли заметка вызывающему.
func (n *Note) OwnedBy(caller Caller) bool {
	return n != nil && caller.Valid() && n.OwnerID == caller.ID
}

// NoteInput - данные для создания или изменения заметки.
// При изменении текст остается прежним, только если Body == nil и BodySet == false.
// BodySet с Body == nil соответствует явному null и очищает текст.
type NoteInput struct {
	Title   string  `json:"title"`
	Body    *string `json:"body"`
	BodySet bool    `json:"-"`
}

// ChangesBody сообщает, задает ли ввод новый текст заметки.
func (in NoteInput) ChangesBody() bool {
	return in.BodySet || in.Body != nil
}

// ErrNULCharacter - текст содержит символ U+0000, который не принимает хранилище.
var ErrNULCharacter = validation.NewError("validation_nul_character", "must not contain NUL characters")

// Validate проверяет заголовок: непустой после удаления пробелов и не длиннее MaxTitleLength.
// Ни заголовок, ни текст не могут содержать NUL.
func (in NoteInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.By(notBlank),
			validation.RuneLength(0, MaxTitleLength),
			validation.By(NoNUL),
		),
		validation.Field(&in.Body, validation.By(NoNUL)),
	)
	return apperr.FromValidation(err)
}

// NormalizeBody переводит пустой текст в отсутствие текста.
func NormalizeBody(body *string) *string {
	if body == nil || *body == "" {
		return nil
	}
	b := *body
	return &b
}

// NoNUL - правило ozzo-validation для string и *string.
func NoNUL(value any) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return nil
	}
	if strings.ContainsRune(s, 0) {
		return ErrNULCharacter
	}
	return nil
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
}
