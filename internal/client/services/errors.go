package services

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation needs a session
	// (and a numeric user id) but there is none.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNothingToSave is returned by ProfileService.Save when no field
	// differs from the current user.
	ErrNothingToSave = errors.New("nothing to save")
	ErrNameRequired  = errors.New("name is required")
	ErrInvalidAmount = errors.New("invalid amount")
)
