package storage

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrOwnerNotFound     = errors.New("owner not found")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPayloadTooLarge   = errors.New("payload too large")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("already exists")
)
