package models

import "errors"

// Ошибки предметной области. Слои выше проверяют их через errors.Is
var (
	ErrValidation            = errors.New("validation error")
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrStoreFailure          = errors.New("store failure")
)
