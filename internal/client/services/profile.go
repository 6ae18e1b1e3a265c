package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/profile"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/user"
	"github.com/dmitrijs2005/finkeeper/internal/client/session"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"golang.org/x/sync/errgroup"
)

// balanceTolerance is the smallest balance difference treated as a change.
const balanceTolerance = 0.0001

// ProfileChanges is the edited profile form. BalanceText is parsed with
// common.ParseNumberLoose; leave it blank to keep the balance.
type ProfileChanges struct {
	Name        string
	Profile     models.FinancialProfile
	BalanceText string
}

// SaveResult tells which parts were sent to the backend.
type SaveResult struct {
	NameChanged    bool
	ProfileChanged bool
	BalanceChanged bool
}

type ProfileService interface {
	RefreshBalance(ctx context.Context) (float64, error)
	Save(ctx context.Context, ch ProfileChanges) (SaveResult, error)
}

type profileService struct {
	repo    user.Repository
	session *session.Session
	log     logging.Logger
}

func NewProfileService(repo user.Repository, sess *session.Session, log logging.Logger) ProfileService {
	return &profileService{repo: repo, session: sess, log: log}
}

// RefreshBalance reads the balance from the backend and mirrors it into
// the session user.
func (p *profileService) RefreshBalance(ctx context.Context) (float64, error) {
	token, ok := p.session.Token()
	if !ok {
		return 0, ErrNotAuthenticated
	}
	saldo, err := p.repo.GetSaldo(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	p.session.UpdateUser(models.UserPatch{CurrentBalance: models.Float64(saldo.SaldoAtual)})
	return saldo.SaldoAtual, nil
}

// Save sends whatever differs from the session user: name and profile in
// one atualizarUsuario call, the balance via PUT /userSaldo. Both requests
// run concurrently. The session is updated only after both succeed.
//
// A session without a numeric user id is treated as broken and signed out.
func (p *profileService) Save(ctx context.Context, ch ProfileChanges) (SaveResult, error) {
	token, ok := p.session.Token()
	current, hasUser := p.session.User()
	if !ok || !hasUser {
		return SaveResult{}, ErrNotAuthenticated
	}
	userID, ok := current.NumericID()
	if !ok {
		p.session.SignOut()
		return SaveResult{}, ErrNotAuthenticated
	}

	name := strings.TrimSpace(ch.Name)
	if name == "" {
		return SaveResult{}, ErrNameRequired
	}

	var balance *float64
	if strings.TrimSpace(ch.BalanceText) != "" {
		v, err := common.ParseNumberLoose(ch.BalanceText)
		if err != nil {
			return SaveResult{}, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
		}
		balance = &v
	}

	res := SaveResult{
		NameChanged:    name != current.Name,
		ProfileChanged: ch.Profile.Valid() && ch.Profile != current.FinancialProfile,
	}
	if balance != nil {
		res.BalanceChanged = current.CurrentBalance == nil ||
			math.Abs(*balance-*current.CurrentBalance) > balanceTolerance
	}
	if !res.NameChanged && !res.ProfileChanged && !res.BalanceChanged {
		return SaveResult{}, ErrNothingToSave
	}

	// a failure of one request must not cancel the other
	var g errgroup.Group
	if res.NameChanged || res.ProfileChanged {
		payload := models.UpdateUserPayload{}
		if res.NameChanged {
			payload.Nome = models.String(name)
		}
		if res.ProfileChanged {
			payload.PerfilFinanceiro = models.String(profile.ToBackend(ch.Profile))
		}
		g.Go(func() error {
			return p.repo.UpdateUser(ctx, token, userID, payload)
		})
	}
	if res.BalanceChanged {
		g.Go(func() error {
			_, err := p.repo.UpdateSaldo(ctx, token, *balance)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		p.log.Warn(ctx, "profile save failed", "user_id", userID, "error", err)
		return SaveResult{}, err
	}

	patch := models.UserPatch{Name: models.String(name)}
	if res.ProfileChanged {
		patch.FinancialProfile = models.Profile(ch.Profile)
	}
	if balance != nil {
		patch.CurrentBalance = balance
	}
	p.session.UpdateUser(patch)
	return res, nil
}
