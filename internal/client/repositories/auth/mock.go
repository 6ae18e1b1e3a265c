package auth

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Demo account accepted by the mock.
const (
	DemoEmail    = "demo@demo.com"
	DemoPassword = "12345678"
	DemoUserID   = "usr_demo"
	DemoUserName = "Usuário Demo"
)

// Error codes produced by the mock.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
)

const (
	defaultLoginDelay    = 900 * time.Millisecond
	defaultRegisterDelay = 1100 * time.Millisecond
	mockIssuer           = "finkeeper-mock"
)

type mockClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// MockRepository simulates the backend offline: a fixed latency, one demo
// account, and HS256 tokens signed with a throwaway key.
type MockRepository struct {
	loginDelay    time.Duration
	registerDelay time.Duration
	signingKey    []byte
	now           func() time.Time
}

type MockOption func(*MockRepository)

// WithDelays overrides the simulated latency.
func WithDelays(login, register time.Duration) MockOption {
	return func(m *MockRepository) {
		m.loginDelay = login
		m.registerDelay = register
	}
}

func NewMockRepository(opts ...MockOption) *MockRepository {
	m := &MockRepository{
		loginDelay:    defaultLoginDelay,
		registerDelay: defaultRegisterDelay,
		signingKey:    []byte("finkeeper-mock-signing-key"),
		now:           time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *MockRepository) Login(ctx context.Context, payload models.LoginDTO) (models.AuthResult, error) {
	if err := wait(ctx, m.loginDelay); err != nil {
		return models.AuthResult{}, err
	}

	email := normalizeEmail(payload.Email)
	if email != DemoEmail || payload.Password != DemoPassword {
		return models.AuthResult{}, client.NewServiceError("Credenciais inválidas. Verifique e-mail e senha.", CodeInvalidCredentials)
	}

	user := models.AuthUser{
		ID:               DemoUserID,
		Name:             DemoUserName,
		Email:            email,
		FinancialProfile: models.ProfileModerado,
	}
	token, err := m.issueToken(user)
	if err != nil {
		return models.AuthResult{}, err
	}
	return models.AuthResult{Token: token, User: user}, nil
}

func (m *MockRepository) Register(ctx context.Context, payload models.RegisterDTO) (models.AuthResult, error) {
	if err := wait(ctx, m.registerDelay); err != nil {
		return models.AuthResult{}, err
	}

	email := normalizeEmail(payload.Email)
	if email == DemoEmail {
		return models.AuthResult{}, client.NewServiceError("Este e-mail já está em uso.", CodeEmailAlreadyExists)
	}

	fp := payload.FinancialProfile
	if !fp.Valid() {
		fp = models.ProfileModerado
	}
	user := models.AuthUser{
		ID:               "usr_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		Name:             strings.TrimSpace(payload.FullName),
		Email:            email,
		FinancialProfile: fp,
		MonthlySalary:    payload.Salary,
		InitialBalance:   payload.InitialBalance,
		CurrentBalance:   payload.InitialBalance,
	}
	token, err := m.issueToken(user)
	if err != nil {
		return models.AuthResult{}, err
	}
	return models.AuthResult{Token: token, User: user.Clone()}, nil
}

func (m *MockRepository) issueToken(u models.AuthUser) (string, error) {
	now := m.now()
	claims := mockClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    mockIssuer,
			Subject:   u.Identifier(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
