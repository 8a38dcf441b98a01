package entities

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"gonotes/pkg/apperr"
)

// Ограничения учетных данных. bcrypt учитывает не более 72 байт пароля.
const (
	MaxNameLength     = 255
	MaxEmailLength    = 255
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrEmailTaken   = fmt.Errorf("%w: email has already been taken", apperr.ErrConflict)
)

// User - владелец заметок.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Caller возвращает вызывающего для этого пользователя.
func (u *User) Caller() Caller {
	return Caller{ID: u.ID}
}

// Registration - данные регистрации.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize обрезает пробелы в имени и приводит email к нижнему регистру.
func (r Registration) Normalize() Registration {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	return r
}

// Validate проверяет имя, email и пароль.
func (r Registration) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxNameLength), validation.By(NoNUL)),
		validation.Field(&r.Email, validation.Required, validation.Length(1, MaxEmailLength), is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.RuneLength(MinPasswordLength, 0),
			validation.Length(0, MaxPasswordBytes), validation.By(NoNUL)),
	)
	return apperr.FromValidation(err)
}

// Credentials - данные входа.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize приводит email к нижнему регистру.
func (c Credentials) Normalize() Credentials {
	c.Email = NormalizeEmail(c.Email)
	return c
}

// Validate проверяет наличие email и пароля.
func (c Credentials) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.EmailFormat),
		validation.Field(&c.Password, validation.Required),
	)
	return apperr.FromValidation(err)
}

// NormalizeEmail приводит email к каноническому виду для сравнения без учета регистра.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
