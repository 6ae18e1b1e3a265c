package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/session"
	"github.com/dmitrijs2005/finkeeper/internal/client/tokenstore"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

// writeTimeout bounds each save/clear triggered by a session change.
const writeTimeout = 5 * time.Second

// Restore loads the saved session into store so that a Session built on it
// starts authenticated. It must run before session.New. An unreadable saved
// session is cleared. Reports whether anything was restored.
func (r *Repository) Restore(ctx context.Context, store *tokenstore.Store, log logging.Logger) bool {
	result, err := r.Load(ctx)
	switch {
	case err == nil:
		store.SetAuthResult(result)
		log.Info(ctx, "session restored", "user", result.User.Identifier())
		return true
	case errors.Is(err, common.ErrorNotFound):
		return false
	case errors.Is(err, ErrUnreadable):
		log.Warn(ctx, "saved session unreadable, discarding", "error", err)
		if err := r.Clear(ctx); err != nil {
			log.Error(ctx, "clear saved session", "error", err)
		}
		return false
	default:
		log.Error(ctx, "load saved session", "error", err)
		return false
	}
}

// Track keeps the saved session in step with sess: every authenticated
// snapshot is saved, a sign-out clears it. Failures are logged only; the
// in-memory session stays authoritative.
func (r *Repository) Track(sess *session.Session, log logging.Logger) (stop func()) {
	return sess.Subscribe(func(snap session.Snapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if !snap.IsAuthenticated() {
			if err := r.Clear(ctx); err != nil {
				log.Error(ctx, "clear saved session", "error", err)
			}
			return
		}
		if snap.User == nil {
			return
		}
		if err := r.Save(ctx, models.AuthResult{Token: snap.Token, User: *snap.User}); err != nil {
			log.Error(ctx, "save session", "error", err)
		}
	})
}
