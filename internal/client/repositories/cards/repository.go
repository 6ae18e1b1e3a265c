// Package cards wraps the credit card endpoints under /api.
package cards

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

// OverviewQuery selects the period and, optionally, the card whose details
// should be embedded in the overview.
type OverviewQuery struct {
	Year     int
	Month    int
	CardUUID string
}

type Repository interface {
	List(ctx context.Context, token string, userID int64) ([]models.CreditCard, error)
	Overview(ctx context.Context, token string, userID int64, q OverviewQuery) (models.CreditCardsOverview, error)
	Create(ctx context.Context, token string, userID int64, dto models.CreateCreditCardDTO) (models.CreditCard, error)
	Edit(ctx context.Context, token string, userID int64, cardUUID string, dto models.EditCreditCardDTO) (models.CreditCard, error)
	SetActive(ctx context.Context, token string, userID int64, cardUUID string, active bool) (models.CardStatus, error)
	PayInvoice(ctx context.Context, token string, userID int64, cardID string, dto models.PayInvoiceDTO) (models.InvoicePaymentResponse, error)
}

type APIRepository struct {
	doer client.Doer
}

func NewAPIRepository(doer client.Doer) *APIRepository {
	return &APIRepository{doer: doer}
}

func (r *APIRepository) List(ctx context.Context, token string, userID int64) ([]models.CreditCard, error) {
	res, err := client.Request[[]models.CreditCard](ctx, r.doer, http.MethodGet, fmt.Sprintf("/api/cartoes/%d", userID), nil, token)
	if err != nil || res == nil {
		return nil, err
	}
	return *res, nil
}

func (r *APIRepository) Overview(ctx context.Context, token string, userID int64, q OverviewQuery) (models.CreditCardsOverview, error) {
	v := url.Values{}
	v.Set("ano", strconv.Itoa(q.Year))
	v.Set("mes", strconv.Itoa(q.Month))
	if q.CardUUID != "" {
		v.Set("cartao_uuid", q.CardUUID)
	}
	path := fmt.Sprintf("/api/getCartoesVisaoGeral/%d?%s", userID, v.Encode())

	res, err := client.Request[models.CreditCardsOverview](ctx, r.doer, http.MethodGet, path, nil, token)
	if err != nil || res == nil {
		return models.CreditCardsOverview{}, err
	}
	return *res, nil
}

func (r *APIRepository) Create(ctx context.Context, token string, userID int64, dto models.CreateCreditCardDTO) (models.CreditCard, error) {
	return one[models.CreditCard](ctx, r.doer, http.MethodPost, fmt.Sprintf("/api/criarCartao/%d", userID), dto, token)
}

func (r *APIRepository) Edit(ctx context.Context, token string, userID int64, cardUUID string, dto models.EditCreditCardDTO) (models.CreditCard, error) {
	path := fmt.Sprintf("/api/editarCartoes/%d/%s", userID, url.PathEscape(cardUUID))
	return one[models.CreditCard](ctx, r.doer, http.MethodPut, path, dto, token)
}

func (r *APIRepository) SetActive(ctx context.Context, token string, userID int64, cardUUID string, active bool) (models.CardStatus, error) {
	path := fmt.Sprintf("/api/cartoes/%d/%s/ativar?ativo=%t", userID, url.PathEscape(cardUUID), active)
	st, err := one[models.CardStatus](ctx, r.doer, http.MethodPatch, path, nil, token)
	if err == nil && st == (models.CardStatus{}) {
		st.Ativo = active
	}
	return st, err
}

func (r *APIRepository) PayInvoice(ctx context.Context, token string, userID int64, cardID string, dto models.PayInvoiceDTO) (models.InvoicePaymentResponse, error) {
	path := fmt.Sprintf("/api/cartoes/%d/%s/pagarFatura", userID, url.PathEscape(cardID))
	return one[models.InvoicePaymentResponse](ctx, r.doer, http.MethodPost, path, dto, token)
}

func one[T any](ctx context.Context, d client.Doer, method, path string, body any, token string) (T, error) {
	var zero T
	res, err := client.Request[T](ctx, d, method, path, body, token)
	if err != nil || res == nil {
		return zero, err
	}
	return *res, nil
}
