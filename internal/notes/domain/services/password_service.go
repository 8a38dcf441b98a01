package services

import "errors"

// Ошибки работы с паролями.
var (
	ErrHashingFailed = errors.New("failed to hash password")
)
