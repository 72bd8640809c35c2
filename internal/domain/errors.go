package domain

import "errors"

var (
	// ErrNotFound is returned when a resource does not exist or is owned by
	// another user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("resource not found")
	// ErrEmailTaken indicates a registration attempt with an email that is
	// already stored.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)
