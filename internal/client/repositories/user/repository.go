// Package user talks to the account endpoints: balance and profile updates.
package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/profile"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

const saldoPath = "/userSaldo"

// profileErrorKeywords mark a rejection as caused by the profile field.
var profileErrorKeywords = []string{"perfil", "financeiro", "validation"}

type Repository interface {
	GetSaldo(ctx context.Context, token string) (models.UserSaldo, error)
	UpdateSaldo(ctx context.Context, token string, saldo float64) (models.UserSaldo, error)
	UpdateUser(ctx context.Context, token string, userID int64, payload models.UpdateUserPayload) error
}

type APIRepository struct {
	doer client.Doer
	log  logging.Logger
}

func NewAPIRepository(doer client.Doer, log logging.Logger) *APIRepository {
	return &APIRepository{doer: doer, log: log}
}

func (r *APIRepository) GetSaldo(ctx context.Context, token string) (models.UserSaldo, error) {
	res, err := client.Request[models.UserSaldo](ctx, r.doer, http.MethodGet, saldoPath, nil, token)
	if err != nil {
		return models.UserSaldo{}, err
	}
	if res == nil {
		return models.UserSaldo{}, nil
	}
	return *res, nil
}

func (r *APIRepository) UpdateSaldo(ctx context.Context, token string, saldo float64) (models.UserSaldo, error) {
	res, err := client.Request[models.UserSaldo](ctx, r.doer, http.MethodPut, saldoPath, models.UserSaldo{SaldoAtual: saldo}, token)
	if err != nil {
		return models.UserSaldo{}, err
	}
	if res == nil {
		return models.UserSaldo{SaldoAtual: saldo}, nil
	}
	return *res, nil
}

// UpdateUser sends PUT /atualizarUsuario/:userID.
//
// Some deployments only accept "arrojado" for the aggressive profile. When
// the payload carries "agressivo" and the backend rejects it with a
// profile-related message, the call is repeated once with "arrojado".
// Every other failure, including a failed retry, is returned unmodified.
func (r *APIRepository) UpdateUser(ctx context.Context, token string, userID int64, payload models.UpdateUserPayload) error {
	path := fmt.Sprintf("/atualizarUsuario/%d", userID)

	_, err := r.doer.Do(ctx, http.MethodPut, path, payload, token)
	if err == nil || !shouldRetryProfile(payload, err) {
		return err
	}

	_, fallback := profile.ToBackendWithFallback(models.ProfileAgressivo)
	r.log.Info(ctx, "profile rejected, retrying with fallback encoding", "user_id", userID, "profile", fallback)

	retry := payload
	retry.PerfilFinanceiro = &fallback
	_, err = r.doer.Do(ctx, http.MethodPut, path, retry, token)
	return err
}

func shouldRetryProfile(payload models.UpdateUserPayload, err error) bool {
	if !payload.HasProfile() {
		return false
	}
	primary, fallback := profile.ToBackendWithFallback(models.ProfileAgressivo)
	if !strings.EqualFold(*payload.PerfilFinanceiro, primary) || primary == fallback {
		return false
	}

	var se *client.ServiceError
	if !errors.As(err, &se) {
		return false
	}
	msg := strings.ToLower(se.Message)
	for _, kw := range profileErrorKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
