// Package sessions persists the signed-in AuthResult in the local SQLite
// store, sealed with a key derived from a user-supplied secret.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/cryptox"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
)

const (
	keySalt = "session.salt"
	keyAuth = "session.auth"
)

var (
	ErrEmptySecret = errors.New("session secret is empty")
	// ErrUnreadable means a saved session exists but cannot be opened with
	// the configured secret.
	ErrUnreadable = errors.New("saved session unreadable")
)

type Repository struct {
	db  *sql.DB
	key []byte
}

// New prepares the store, creating the key-derivation salt on first use.
func New(ctx context.Context, db *sql.DB, secret []byte) (*Repository, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	var salt []byte
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := metadata.NewSQLiteRepository(tx)
		s, err := meta.Get(ctx, keySalt)
		if err != nil {
			return err
		}
		if s == nil {
			s = cryptox.NewSalt()
			if err := meta.Set(ctx, keySalt, s); err != nil {
				return err
			}
		}
		salt = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("session salt: %w", err)
	}

	return &Repository{db: db, key: cryptox.DeriveKey(secret, salt)}, nil
}

func (r *Repository) Save(ctx context.Context, result models.AuthResult) error {
	blob, err := cryptox.SealJSON(result, r.key)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	return metadata.NewSQLiteRepository(r.db).Set(ctx, keyAuth, blob)
}

// Load returns the saved session, common.ErrorNotFound if there is none,
// or ErrUnreadable if the secret does not match.
func (r *Repository) Load(ctx context.Context) (models.AuthResult, error) {
	blob, err := metadata.NewSQLiteRepository(r.db).Get(ctx, keyAuth)
	if err != nil {
		return models.AuthResult{}, err
	}
	if blob == nil {
		return models.AuthResult{}, common.ErrorNotFound
	}

	var result models.AuthResult
	if err := cryptox.OpenJSON(blob, r.key, &result); err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if result.Token == "" {
		return models.AuthResult{}, common.ErrorNotFound
	}
	return result, nil
}

// Clear forgets the saved session. The salt is kept.
func (r *Repository) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(r.db).Delete(ctx, keyAuth)
}
