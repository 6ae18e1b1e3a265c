// Package auth provides the authentication repositories: an API-backed one
// talking to the REST backend and an offline mock for development.
//
// Both return the canonical models.AuthResult; the backend's wire schema
// never leaves this package.
package auth

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

// Repository authenticates users.
//
// Failures are returned unmodified from the layer below; the API variant
// does not invent error codes.
type Repository interface {
	Login(ctx context.Context, payload models.LoginDTO) (models.AuthResult, error)
	Register(ctx context.Context, payload models.RegisterDTO) (models.AuthResult, error)
}
