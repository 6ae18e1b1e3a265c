// Package common defines shared sentinel errors and small helpers used
// across the FinKeeper client. Callers should use errors.Is to match the
// error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Parsing errors.
	ErrInvalidNumber = errors.New("invalid number")
)
