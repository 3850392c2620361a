package models

import "errors"

// Shared error kinds the API layer maps to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
