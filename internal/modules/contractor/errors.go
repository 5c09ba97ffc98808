package contractor

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("contractor not found")
	ErrEmailExists    = errors.New("email already exists")
	ErrAlreadyInvited = errors.New("invitation already exists")
)
