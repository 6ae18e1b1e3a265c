package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/testutil/fakebackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIRepo(t *testing.T) (*APIRepository, *fakebackend.Backend) {
	t.Helper()
	b := fakebackend.New()
	srv := b.Start(t)
	return NewAPIRepository(client.NewHTTPClient(srv.URL)), b
}

// fakeDoer answers by path and records what was sent.
type fakeDoer struct {
	Responses map[string][]byte
	Errs      map[string]error

	Paths  []string
	Bodies []any
}

func (f *fakeDoer) Do(ctx context.Context, method, path string, body any, token string) ([]byte, error) {
	f.Paths = append(f.Paths, method+" "+path)
	f.Bodies = append(f.Bodies, body)
	if err := f.Errs[path]; err != nil {
		return nil, err
	}
	return f.Responses[path], nil
}

func TestAPILogin_MapsBackendUser(t *testing.T) {
	repo, b := newAPIRepo(t)
	salary := 5000.0
	b.AddUser(fakebackend.User{
		Nome: "Ana", Email: "ana@x.com", Senha: "secret12",
		PerfilFinanceiro: "Arrojado", SalarioMensal: &salary,
	})

	res, err := repo.Login(context.Background(), models.LoginDTO{Email: "ana@x.com", Password: "secret12"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "1", res.User.IDUsuario)
	assert.Equal(t, "Ana", res.User.Name)
	assert.Equal(t, models.ProfileAgressivo, res.User.FinancialProfile)
	require.NotNil(t, res.User.MonthlySalary)
	assert.Equal(t, 5000.0, *res.User.MonthlySalary)

	id, ok := res.User.NumericID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestAPILogin_InvalidCredentials(t *testing.T) {
	repo, _ := newAPIRepo(t)

	_, err := repo.Login(context.Background(), models.LoginDTO{Email: "nobody@x.com", Password: "whatever"})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Credenciais inválidas.", client.MessageOf(err))
	assert.Empty(t, client.CodeOf(err))
}

func TestAPILogin_StringIDAndEmptyProfile(t *testing.T) {
	fd := &fakeDoer{Responses: map[string][]byte{
		loginPath: []byte(`{"token":"t1","user":{"id_usuario":"abc","nome":"N","email":"n@x.com","perfil_financeiro":""}}`),
	}}
	repo := NewAPIRepository(fd)

	res, err := repo.Login(context.Background(), models.LoginDTO{Email: "n@x.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "abc", res.User.IDUsuario)
	assert.Equal(t, models.ProfileModerado, res.User.FinancialProfile)

	_, ok := res.User.NumericID()
	assert.False(t, ok)

	body, ok := fd.Bodies[0].(loginRequest)
	require.True(t, ok)
	assert.Equal(t, loginRequest{Email: "n@x.com", Senha: "p"}, body)
}

func TestAPILogin_MissingToken(t *testing.T) {
	fd := &fakeDoer{Responses: map[string][]byte{
		loginPath: []byte(`{"user":{"id_usuario":1}}`),
	}}
	_, err := NewAPIRepository(fd).Login(context.Background(), models.LoginDTO{Email: "a", Password: "b"})
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAPIRegister_CreatesThenLogsIn(t *testing.T) {
	repo, b := newAPIRepo(t)
	salary := 3200.0
	initial := 150.5

	res, err := repo.Register(context.Background(), models.RegisterDTO{
		FullName:         "Bruno Lima",
		Email:            "bruno@x.com",
		Password:         "segredo1",
		FinancialProfile: models.ProfileAgressivo,
		Salary:           &salary,
		InitialBalance:   &initial,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Bruno Lima", res.User.Name)
	assert.Equal(t, models.ProfileAgressivo, res.User.FinancialProfile)

	assert.Equal(t, []string{"POST /createUser", "POST /loginUser"}, b.Calls())

	u, ok := b.User("bruno@x.com")
	require.True(t, ok)
	assert.Equal(t, "agressivo", u.PerfilFinanceiro)
	assert.Equal(t, "segredo1", u.Senha)
	assert.Equal(t, 150.5, u.SaldoAtual)
}

func TestAPIRegister_DuplicateSkipsLogin(t *testing.T) {
	repo, b := newAPIRepo(t)
	b.AddUser(fakebackend.User{Nome: "X", Email: "dup@x.com", Senha: "12345678"})

	_, err := repo.Register(context.Background(), models.RegisterDTO{
		FullName: "Y", Email: "dup@x.com", Password: "12345678", FinancialProfile: models.ProfileModerado,
	})
	require.Error(t, err)
	assert.Equal(t, "E-mail já cadastrado.", client.MessageOf(err))

	var se *client.ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.Status)
	assert.Equal(t, []string{"POST /createUser"}, b.Calls())
}

func TestAPIRegister_LoginFailureReturnedUnchanged(t *testing.T) {
	repo, b := newAPIRepo(t)
	b.FailLogin = "serviço de login indisponível"

	_, err := repo.Register(context.Background(), models.RegisterDTO{
		FullName: "Carla", Email: "carla@x.com", Password: "12345678", FinancialProfile: models.ProfileConservador,
	})
	require.Error(t, err)
	assert.Equal(t, "serviço de login indisponível", err.Error())

	_, created := b.User("carla@x.com")
	assert.True(t, created)
	assert.Equal(t, []string{"POST /createUser", "POST /loginUser"}, b.Calls())
}

func TestAPIRegister_LoginErrorIdentity(t *testing.T) {
	loginErr := errors.New("boom")
	fd := &fakeDoer{
		Responses: map[string][]byte{createUserPath: []byte(`{"message":"ok","status":201}`)},
		Errs:      map[string]error{loginPath: loginErr},
	}

	_, err := NewAPIRepository(fd).Register(context.Background(), models.RegisterDTO{
		FullName: "D", Email: "d@x.com", Password: "12345678", FinancialProfile: models.ProfileModerado,
	})
	assert.Same(t, loginErr, err)

	body, ok := fd.Bodies[0].(createUserRequest)
	require.True(t, ok)
	assert.Equal(t, "moderado", body.User.PerfilFinanceiro)
	assert.Equal(t, "12345678", body.User.SenhaHash)
}

func TestWireID_Unmarshal(t *testing.T) {
	cases := map[string]string{
		`42`:      "42",
		`"usr_1"`: "usr_1",
		`null`:    "",
	}
	for in, want := range cases {
		var id wireID
		require.NoError(t, id.UnmarshalJSON([]byte(in)), in)
		assert.Equal(t, want, string(id), in)
	}

	var id wireID
	assert.Error(t, id.UnmarshalJSON([]byte(`{}`)))
}
