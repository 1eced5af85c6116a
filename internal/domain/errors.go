package domain

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid command request")
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoSession       = errors.New("no backend session available")
)
