package notice

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("notice not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
