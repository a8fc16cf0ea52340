package types

import (
	errs "errors"
)

var (
	// ErrNotFound covers both a missing note and a note owned by someone else.
	ErrNotFound           = errs.New("not found")
	ErrAlreadyExists      = errs.New("already exists")
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrUnauthenticated    = errs.New("unauthenticated")
	ErrValidationFailed   = errs.New("validation failed")
	ErrSignupNotAllowed   = errs.New("signup not allowed")
)
