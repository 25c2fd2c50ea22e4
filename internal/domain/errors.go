package domain

import "errors"

// Sentinel error kinds. Services wrap these with fmt.Errorf and %w so the
// API layer can map them to status codes with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("booking conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("forbidden")
)
