package usecase

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInsufficientTeams = errors.New("insufficient teams")
	ErrUnauthorized      = errors.New("unauthorized")
)
