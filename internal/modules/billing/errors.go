package billing

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("invoice not found")
	ErrAlreadyPaid     = errors.New("invoice already paid")
	ErrNotPaid         = errors.New("session not paid")
	ErrExternalService = errors.New("payment provider error")
)
