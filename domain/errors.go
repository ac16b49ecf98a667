package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidID    = errors.New("invalid id")
	ErrUnauthorized = errors.New("unauthorized request")
	ErrNotVerified  = errors.New("account is not verified")
	ErrEmailTaken   = errors.New("email is already in use")
)
