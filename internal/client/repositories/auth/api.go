package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/profile"
)

const (
	loginPath      = "/loginUser"
	createUserPath = "/createUser"
)

// ErrMalformedResponse is returned when a 2xx login response has no token.
var ErrMalformedResponse = errors.New("malformed login response")

// wireID accepts the backend identifier as a JSON number or string.
type wireID string

func (id *wireID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id_usuario: %w", err)
	}
	*id = wireID(n.String())
	return nil
}

type backendUser struct {
	IDUsuario        wireID   `json:"id_usuario"`
	Nome             string   `json:"nome"`
	Email            string   `json:"email"`
	PerfilFinanceiro string   `json:"perfil_financeiro"`
	SalarioMensal    *float64 `json:"salario_mensal"`
	SaldoAtual       *float64 `json:"saldo_atual"`
	SaldoInicial     *float64 `json:"saldo_inicial"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  backendUser `json:"user"`
}

type createUserBody struct {
	Nome             string   `json:"nome"`
	Email            string   `json:"email"`
	SenhaHash        string   `json:"senha_hash"`
	PerfilFinanceiro string   `json:"perfil_financeiro"`
	SalarioMensal    *float64 `json:"salario_mensal,omitempty"`
	SaldoInicial     *float64 `json:"saldo_inicial,omitempty"`
}

type createUserRequest struct {
	User createUserBody `json:"user"`
}

type createUserResponse struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

// APIRepository authenticates against POST /loginUser and POST /createUser.
type APIRepository struct {
	doer client.Doer
}

func NewAPIRepository(doer client.Doer) *APIRepository {
	return &APIRepository{doer: doer}
}

func (r *APIRepository) Login(ctx context.Context, payload models.LoginDTO) (models.AuthResult, error) {
	res, err := client.Request[loginResponse](ctx, r.doer, http.MethodPost, loginPath,
		loginRequest{Email: payload.Email, Senha: payload.Password}, "")
	if err != nil {
		return models.AuthResult{}, err
	}
	if res == nil || res.Token == "" {
		return models.AuthResult{}, ErrMalformedResponse
	}
	return toAuthResult(res), nil
}

// Register creates the account and then logs in with the same credentials,
// because createUser does not hand out a token. The login only runs after
// the create call succeeded. If it fails, its error is returned as is: the
// caller cannot tell from it that the account now exists.
func (r *APIRepository) Register(ctx context.Context, payload models.RegisterDTO) (models.AuthResult, error) {
	req := createUserRequest{User: createUserBody{
		Nome:             payload.FullName,
		Email:            payload.Email,
		SenhaHash:        payload.Password, // hashed by the backend
		PerfilFinanceiro: profile.ToBackend(payload.FinancialProfile),
		SalarioMensal:    payload.Salary,
		SaldoInicial:     payload.InitialBalance,
	}}
	if _, err := client.Request[createUserResponse](ctx, r.doer, http.MethodPost, createUserPath, req, ""); err != nil {
		return models.AuthResult{}, err
	}

	return r.Login(ctx, models.LoginDTO{Email: payload.Email, Password: payload.Password})
}

func toAuthResult(res *loginResponse) models.AuthResult {
	u := res.User
	return models.AuthResult{
		Token: res.Token,
		User: models.AuthUser{
			IDUsuario:        string(u.IDUsuario),
			Name:             u.Nome,
			Email:            u.Email,
			FinancialProfile: profile.FromBackend(u.PerfilFinanceiro),
			MonthlySalary:    u.SalarioMensal,
			CurrentBalance:   u.SaldoAtual,
			InitialBalance:   u.SaldoInicial,
		},
	}
}
