package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrUsernameTaken indicates the username is already bound to another user.
	ErrUsernameTaken = errors.New("repository: username already taken")
)
