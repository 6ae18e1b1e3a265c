// Package dashboard fetches the monthly summary shown on the home screen.
package dashboard

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

const summaryPath = "/api/dashboard/getSummary"

type Repository interface {
	Summary(ctx context.Context, token string, month, year int) (models.DashboardData, error)
}

type APIRepository struct {
	doer client.Doer
}

func NewAPIRepository(doer client.Doer) *APIRepository {
	return &APIRepository{doer: doer}
}

// Summary fetches the summary of the given month. A zero month or year is
// left out of the query and the backend picks the current one.
func (r *APIRepository) Summary(ctx context.Context, token string, month, year int) (models.DashboardData, error) {
	v := url.Values{}
	if month > 0 {
		v.Set("mes", strconv.Itoa(month))
	}
	if year > 0 {
		v.Set("ano", strconv.Itoa(year))
	}
	path := summaryPath
	if q := v.Encode(); q != "" {
		path += "?" + q
	}

	res, err := client.Request[models.DashboardData](ctx, r.doer, http.MethodGet, path, nil, token)
	if err != nil || res == nil {
		return models.DashboardData{}, err
	}
	return *res, nil
}
