package api

import (
	"fmt"
	"net/http"

	"gonotes/pkg/apperr"
)

// Error - ответ сервера с кодом не из диапазона 2xx.
// Через errors.Is сопоставляется с видом ошибки из apperr.
type Error struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
	kind       error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Unwrap возвращает вид ошибки.
func (e *Error) Unwrap() error {
	return e.kind
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return apperr.ErrUnauthenticated
	case http.StatusForbidden:
		return apperr.ErrForbidden
	case http.StatusNotFound:
		return apperr.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.ErrValidation
	case http.StatusConflict:
		return apperr.ErrConflict
	case http.StatusTooManyRequests:
		return apperr.ErrRateLimited
	default:
		return nil
	}
}
