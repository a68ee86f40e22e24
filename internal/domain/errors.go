package domain

import "errors"

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)
