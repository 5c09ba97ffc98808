package messaging

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("recipient not found")
)
