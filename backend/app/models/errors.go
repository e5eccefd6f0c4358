package models

import "errors"

var (
	ErrNotFound                 = errors.New("not found")
	ErrDuplicateUsernameOrEmail = errors.New("username or email already taken")
	ErrInvalidCredentials       = errors.New("invalid username/password")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrForbidden                = errors.New("forbidden")
	ErrValidation               = errors.New("validation error")
	ErrEmptyPassword            = errors.New("password must not be empty")
)
