package services

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/dashboard"
)

// TokenSource reads the current token without subscribing to the session.
// *tokenstore.Store satisfies it.
type TokenSource interface {
	AuthToken() (string, bool)
}

type DashboardService interface {
	Summary(ctx context.Context, month, year int) (models.DashboardData, error)
}

type dashboardService struct {
	repo   dashboard.Repository
	tokens TokenSource
}

func NewDashboardService(repo dashboard.Repository, tokens TokenSource) DashboardService {
	return &dashboardService{repo: repo, tokens: tokens}
}

func (d *dashboardService) Summary(ctx context.Context, month, year int) (models.DashboardData, error) {
	token, ok := d.tokens.AuthToken()
	if !ok {
		return models.DashboardData{}, ErrNotAuthenticated
	}
	return d.repo.Summary(ctx, token, month, year)
}
