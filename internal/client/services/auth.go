package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/auth"
	"github.com/dmitrijs2005/finkeeper/internal/client/session"
	"github.com/dmitrijs2005/finkeeper/internal/client/validation"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

// AuthService signs users in and out.
//
// Contract:
//   - Login/Register: validate locally, call the repository, then sign the
//     session in with the returned AuthResult. Invalid input yields a
//     *validation.Error and no backend call.
//   - Repository failures are returned as is so callers can inspect
//     client.ServiceError codes.
//   - Logout: clear the session.
type AuthService interface {
	Login(ctx context.Context, in models.LoginDTO) (models.AuthUser, error)
	Register(ctx context.Context, in validation.RegisterInput) (models.AuthUser, error)
	Logout()
}

type authService struct {
	repo    auth.Repository
	session *session.Session
	log     logging.Logger
}

func NewAuthService(repo auth.Repository, sess *session.Session, log logging.Logger) AuthService {
	return &authService{repo: repo, session: sess, log: log}
}

func (a *authService) Login(ctx context.Context, in models.LoginDTO) (models.AuthUser, error) {
	if err := validation.AsError(validation.ValidateLogin(in)); err != nil {
		return models.AuthUser{}, err
	}
	in.Email = strings.TrimSpace(in.Email)

	res, err := a.repo.Login(ctx, in)
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", in.Email, "error", err)
		return models.AuthUser{}, err
	}
	return a.signIn(res)
}

func (a *authService) Register(ctx context.Context, in validation.RegisterInput) (models.AuthUser, error) {
	if err := validation.AsError(validation.ValidateRegister(in)); err != nil {
		return models.AuthUser{}, err
	}
	dto := in.DTO()

	res, err := a.repo.Register(ctx, dto)
	if err != nil {
		a.log.Warn(ctx, "register failed", "email", dto.Email, "error", err)
		return models.AuthUser{}, err
	}
	return a.signIn(res)
}

func (a *authService) Logout() {
	a.session.SignOut()
}

func (a *authService) signIn(res models.AuthResult) (models.AuthUser, error) {
	if err := a.session.SignIn(res); err != nil {
		return models.AuthUser{}, err
	}
	return res.User.Clone(), nil
}
