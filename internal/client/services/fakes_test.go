package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/cards"
	"github.com/dmitrijs2005/finkeeper/internal/client/session"
	"github.com/dmitrijs2005/finkeeper/internal/client/tokenstore"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func newSession(t *testing.T) (*session.Session, *tokenstore.Store) {
	t.Helper()
	store := tokenstore.New()
	return session.New(store, logging.Discard()), store
}

func signedIn(t *testing.T, u models.AuthUser) (*session.Session, *tokenstore.Store) {
	t.Helper()
	s, store := newSession(t)
	require.NoError(t, s.SignIn(models.AuthResult{Token: "tok", User: u}))
	return s, store
}

// ---- fake auth repository ----

type fakeAuthRepo struct {
	LoginRet    models.AuthResult
	LoginErr    error
	RegisterRet models.AuthResult
	RegisterErr error

	LoginCalls    int
	RegisterCalls int
	LastLogin     models.LoginDTO
	LastRegister  models.RegisterDTO
}

func (f *fakeAuthRepo) Login(ctx context.Context, in models.LoginDTO) (models.AuthResult, error) {
	f.LoginCalls++
	f.LastLogin = in
	return f.LoginRet, f.LoginErr
}

func (f *fakeAuthRepo) Register(ctx context.Context, in models.RegisterDTO) (models.AuthResult, error) {
	f.RegisterCalls++
	f.LastRegister = in
	return f.RegisterRet, f.RegisterErr
}

// ---- fake user repository ----

type fakeUserRepo struct {
	mu sync.Mutex

	SaldoRet       float64
	GetSaldoErr    error
	UpdateSaldoErr error
	UpdateUserErr  error
	// SaldoDelay makes UpdateSaldo wait that long, or until ctx is done.
	SaldoDelay time.Duration

	UpdateUserCalls  int
	UpdateSaldoCalls int
	LastUserID       int64
	LastPayload      models.UpdateUserPayload
	LastSaldo        float64
	LastToken        string
	LastSaldoCtxErr  error
}

func (f *fakeUserRepo) GetSaldo(ctx context.Context, token string) (models.UserSaldo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	return models.UserSaldo{SaldoAtual: f.SaldoRet}, f.GetSaldoErr
}

func (f *fakeUserRepo) UpdateSaldo(ctx context.Context, token string, saldo float64) (models.UserSaldo, error) {
	if f.SaldoDelay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(f.SaldoDelay):
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateSaldoCalls++
	f.LastSaldo = saldo
	f.LastSaldoCtxErr = ctx.Err()
	return models.UserSaldo{SaldoAtual: saldo}, f.UpdateSaldoErr
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, token string, userID int64, payload models.UpdateUserPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateUserCalls++
	f.LastUserID = userID
	f.LastPayload = payload
	return f.UpdateUserErr
}

// ---- fake cards repository ----

type fakeCardsRepo struct {
	ListRet     []models.CreditCard
	ListErr     error
	OverviewRet models.CreditCardsOverview
	OverviewErr error

	OverviewCalls int
	LastQuery     cards.OverviewQuery
	LastUserID    int64
	LastToken     string
	LastActive    *bool
}

func (f *fakeCardsRepo) List(ctx context.Context, token string, userID int64) ([]models.CreditCard, error) {
	f.LastToken, f.LastUserID = token, userID
	return f.ListRet, f.ListErr
}

func (f *fakeCardsRepo) Overview(ctx context.Context, token string, userID int64, q cards.OverviewQuery) (models.CreditCardsOverview, error) {
	f.OverviewCalls++
	f.LastQuery = q
	return f.OverviewRet, f.OverviewErr
}

func (f *fakeCardsRepo) Create(ctx context.Context, token string, userID int64, dto models.CreateCreditCardDTO) (models.CreditCard, error) {
	f.LastUserID = userID
	return models.CreditCard{UUID: "new", Nome: dto.Nome}, nil
}

func (f *fakeCardsRepo) Edit(ctx context.Context, token string, userID int64, cardUUID string, dto models.EditCreditCardDTO) (models.CreditCard, error) {
	return models.CreditCard{UUID: cardUUID}, nil
}

func (f *fakeCardsRepo) SetActive(ctx context.Context, token string, userID int64, cardUUID string, active bool) (models.CardStatus, error) {
	f.LastActive = &active
	return models.CardStatus{Ativo: active}, nil
}

func (f *fakeCardsRepo) PayInvoice(ctx context.Context, token string, userID int64, cardID string, dto models.PayInvoiceDTO) (models.InvoicePaymentResponse, error) {
	return models.InvoicePaymentResponse{ValorPago: dto.ValorPagamento, StatusFatura: models.InvoicePaid}, nil
}
