// Package apperr описывает виды ошибок, общие для сервера и клиента,
// и ошибку валидации с сообщениями по полям.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Виды ошибок. Конкретные ошибки оборачивают их через %w.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrRateLimited     = errors.New("too many requests")
)

// ValidationError хранит сообщения об ошибках по именам полей.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError создает ошибку с одним сообщением для поля.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// Add добавляет сообщение для поля.
func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = make(map[string][]string)
	}
	v.Fields[field] = append(v.Fields[field], message)
}

// Empty сообщает, что ошибок не добавлено.
func (v *ValidationError) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

func (v *ValidationError) Error() string {
	if v.Empty() {
		return ErrValidation.Error()
	}

	keys := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(v.Fields[field], "; ")))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, ", "))
}

// Is позволяет сравнивать ошибку с ErrValidation через errors.Is.
func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FromValidation переводит ошибки ozzo-validation в *ValidationError.
// Внутренние ошибки правил и nil возвращаются без изменений.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: map[string][]string{"": {err.Error()}}}
	}

	out := &ValidationError{}
	flatten(out, "", fieldErrs)
	return out
}

func flatten(out *ValidationError, prefix string, errs validation.Errors) {
	for field, err := range errs {
		if err == nil {
			continue
		}
		name := field
		if prefix != "" {
			name = prefix + "." + field
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			flatten(out, name, nested)
			continue
		}
		out.Add(name, err.Error())
	}
}
