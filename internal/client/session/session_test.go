package session

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/tokenstore"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoResult() models.AuthResult {
	return models.AuthResult{
		Token: "tok",
		User: models.AuthUser{
			ID:               "usr_demo",
			Name:             "Usuário Demo",
			Email:            "demo@demo.com",
			FinancialProfile: models.ProfileModerado,
		},
	}
}

func newSession(t *testing.T) (*Session, *tokenstore.Store) {
	t.Helper()
	store := tokenstore.New()
	return New(store, logging.Discard()), store
}

func TestNew_StartsUnauthenticatedOnEmptyStore(t *testing.T) {
	s, _ := newSession(t)

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, Unauthenticated, s.State())
	assert.Equal(t, Snapshot{}, s.Snapshot())
	_, ok := s.User()
	assert.False(t, ok)
}

func TestNew_RehydratesFromStore(t *testing.T) {
	store := tokenstore.New()
	store.SetAuthResult(demoResult())

	s := New(store, logging.Discard())
	require.True(t, s.IsAuthenticated())
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "usr_demo", u.Identifier())
}

func TestSignIn_SetsTokenAndUserTogether(t *testing.T) {
	s, store := newSession(t)

	require.NoError(t, s.SignIn(demoResult()))

	snap := s.Snapshot()
	assert.Equal(t, "tok", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, "Usuário Demo", snap.User.Name)
	assert.Equal(t, Authenticated, s.State())

	res, ok := store.AuthResult()
	require.True(t, ok)
	assert.Equal(t, "tok", res.Token)
}

func TestSignIn_EmptyTokenRejected(t *testing.T) {
	s, store := newSession(t)

	err := s.SignIn(models.AuthResult{User: demoResult().User})
	require.ErrorIs(t, err, ErrEmptyToken)

	assert.False(t, s.IsAuthenticated())
	_, ok := store.AuthUser()
	assert.False(t, ok)
}

func TestSignIn_ReplacesExistingSession(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.SignIn(demoResult()))

	other := models.AuthResult{Token: "tok2", User: models.AuthUser{IDUsuario: "9", Name: "B"}}
	require.NoError(t, s.SignIn(other))

	snap := s.Snapshot()
	assert.Equal(t, "tok2", snap.Token)
	assert.Equal(t, "B", snap.User.Name)
}

func TestSignOut_IdempotentAndClearsStore(t *testing.T) {
	s, store := newSession(t)
	require.NoError(t, s.SignIn(demoResult()))

	s.SignOut()
	s.Logout()

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, Snapshot{}, s.Snapshot())
	_, ok := store.AuthToken()
	assert.False(t, ok)
}

func TestUpdateUser_MergesPatch(t *testing.T) {
	s, store := newSession(t)
	require.NoError(t, s.SignIn(demoResult()))

	s.UpdateUser(models.UserPatch{
		Name:           models.String("Novo Nome"),
		CurrentBalance: models.Float64(321),
	})

	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "Novo Nome", u.Name)
	assert.Equal(t, "demo@demo.com", u.Email)
	assert.Equal(t, models.ProfileModerado, u.FinancialProfile)
	require.NotNil(t, u.CurrentBalance)
	assert.Equal(t, 321.0, *u.CurrentBalance)

	mirrored, _ := store.AuthUser()
	assert.Equal(t, "Novo Nome", mirrored.Name)

	tok, _ := s.Token()
	assert.Equal(t, "tok", tok)
}

func TestUpdateUser_NoOpWhenSignedOut(t *testing.T) {
	s, store := newSession(t)
	calls := 0
	s.Subscribe(func(Snapshot) { calls++ })

	s.UpdateUser(models.UserPatch{Name: models.String("X")})

	assert.False(t, s.IsAuthenticated())
	_, ok := store.AuthUser()
	assert.False(t, ok)
	assert.Zero(t, calls)
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newSession(t)
	res := demoResult()
	res.User.CurrentBalance = models.Float64(10)
	require.NoError(t, s.SignIn(res))

	snap := s.Snapshot()
	*snap.User.CurrentBalance = 999
	snap.User.Name = "hacked"

	u, _ := s.User()
	assert.Equal(t, 10.0, *u.CurrentBalance)
	assert.Equal(t, "Usuário Demo", u.Name)
}

func TestSubscribe_NotifiesInOrderAndUnsubscribes(t *testing.T) {
	s, _ := newSession(t)

	var got []string
	unsubA := s.Subscribe(func(sn Snapshot) { got = append(got, "a:"+sn.State().String()) })
	s.Subscribe(func(sn Snapshot) { got = append(got, "b:"+sn.State().String()) })

	require.NoError(t, s.SignIn(demoResult()))
	unsubA()
	unsubA()
	s.SignOut()
	s.SignOut()

	assert.Equal(t, []string{
		"a:authenticated", "b:authenticated",
		"b:unauthenticated",
	}, got)
}

func TestSubscriberNeverSeesPartialState(t *testing.T) {
	s, _ := newSession(t)
	s.Subscribe(func(sn Snapshot) {
		if (sn.Token == "") != (sn.User == nil) {
			t.Errorf("partial state observed: %+v", sn)
		}
	})

	require.NoError(t, s.SignIn(demoResult()))
	s.UpdateUser(models.UserPatch{Name: models.String("x")})
	s.SignOut()
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	s, _ := newSession(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.SignIn(demoResult())
			s.UpdateUser(models.UserPatch{Name: models.String("n")})
			s.SignOut()
		}()
		go func() {
			defer wg.Done()
			sn := s.Snapshot()
			if (sn.Token == "") != (sn.User == nil) {
				t.Errorf("partial state observed: %+v", sn)
			}
		}()
	}
	wg.Wait()
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
}
