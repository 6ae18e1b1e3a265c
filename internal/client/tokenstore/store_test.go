package tokenstore

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() models.AuthResult {
	return models.AuthResult{
		Token: "tok-1",
		User: models.AuthUser{
			IDUsuario:        "42",
			Name:             "Ana",
			Email:            "ana@example.com",
			FinancialProfile: models.ProfileModerado,
		},
	}
}

func TestStore_EmptyByDefault(t *testing.T) {
	s := New()

	_, ok := s.AuthToken()
	assert.False(t, ok)
	_, ok = s.AuthUser()
	assert.False(t, ok)
	_, ok = s.AuthUserID()
	assert.False(t, ok)
	_, ok = s.AuthResult()
	assert.False(t, ok)
}

func TestStore_SetAuthResult_OverwritesBoth(t *testing.T) {
	s := New()
	s.SetAuthResult(sampleResult())

	second := models.AuthResult{Token: "tok-2", User: models.AuthUser{ID: "7", Name: "Bia"}}
	s.SetAuthResult(second)

	tok, ok := s.AuthToken()
	require.True(t, ok)
	assert.Equal(t, "tok-2", tok)

	u, ok := s.AuthUser()
	require.True(t, ok)
	assert.Equal(t, "Bia", u.Name)
	assert.Empty(t, u.IDUsuario)
}

func TestStore_ClearAuth_Idempotent(t *testing.T) {
	s := New()
	s.SetAuthResult(sampleResult())

	s.ClearAuth()
	s.ClearAuth()

	_, ok := s.AuthToken()
	assert.False(t, ok)
	_, ok = s.AuthUser()
	assert.False(t, ok)
}

func TestStore_UpdateAuthUser_MergesFields(t *testing.T) {
	s := New()
	s.SetAuthResult(sampleResult())

	s.UpdateAuthUser(models.UserPatch{CurrentBalance: models.Float64(300)})

	u, ok := s.AuthUser()
	require.True(t, ok)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	require.NotNil(t, u.CurrentBalance)
	assert.Equal(t, 300.0, *u.CurrentBalance)
}

func TestStore_UpdateAuthUser_NoUserIsNoop(t *testing.T) {
	s := New()
	s.UpdateAuthUser(models.UserPatch{Name: models.String("ghost")})

	_, ok := s.AuthUser()
	assert.False(t, ok)
}

func TestStore_AuthUserID(t *testing.T) {
	s := New()

	s.SetAuthResult(models.AuthResult{Token: "t", User: models.AuthUser{ID: "17"}})
	id, ok := s.AuthUserID()
	require.True(t, ok)
	assert.Equal(t, int64(17), id)

	s.SetAuthResult(models.AuthResult{Token: "t", User: models.AuthUser{IDUsuario: "42"}})
	id, ok = s.AuthUserID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	s.SetAuthResult(models.AuthResult{Token: "t", User: models.AuthUser{Name: "no id"}})
	_, ok = s.AuthUserID()
	assert.False(t, ok)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New()
	r := sampleResult()
	r.User.CurrentBalance = models.Float64(10)
	s.SetAuthResult(r)

	*r.User.CurrentBalance = 999

	u, _ := s.AuthUser()
	assert.Equal(t, 10.0, *u.CurrentBalance)

	*u.CurrentBalance = 555
	u2, _ := s.AuthUser()
	assert.Equal(t, 10.0, *u2.CurrentBalance)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetAuthResult(sampleResult())
		}()
		go func() {
			defer wg.Done()
			_, _ = s.AuthResult()
		}()
	}
	wg.Wait()

	res, ok := s.AuthResult()
	require.True(t, ok)
	assert.Equal(t, "tok-1", res.Token)
}

func TestDefault_IsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
