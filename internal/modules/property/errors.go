package property

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("property not found")
	ErrNotATenant    = errors.New("user is not a tenant")
	ErrAlreadyTenant = errors.New("tenant already added")
)
