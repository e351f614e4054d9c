package services

import "errors"

var (
	// ErrInvalidInput marks requests that fail semantic validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidState marks operations attempted in the wrong interview phase.
	ErrInvalidState = errors.New("invalid interview state")
)
