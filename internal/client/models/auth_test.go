package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthUser_NumericID(t *testing.T) {
	tests := []struct {
		name   string
		user   AuthUser
		want   int64
		wantOK bool
	}{
		{name: "legacy id only", user: AuthUser{ID: "17"}, want: 17, wantOK: true},
		{name: "modern id only", user: AuthUser{IDUsuario: "42"}, want: 42, wantOK: true},
		{name: "modern wins", user: AuthUser{IDUsuario: "42", ID: "17"}, want: 42, wantOK: true},
		{name: "neither", user: AuthUser{}, wantOK: false},
		{name: "non numeric legacy", user: AuthUser{ID: "usr_demo"}, wantOK: false},
		{name: "non numeric modern falls back to legacy", user: AuthUser{IDUsuario: "abc", ID: "5"}, want: 5, wantOK: true},
		{name: "fractional rejected", user: AuthUser{ID: "4.5"}, wantOK: false},
		{name: "fractional modern is absent", user: AuthUser{IDUsuario: "1.5"}, wantOK: false},
		{name: "fractional modern falls back to legacy", user: AuthUser{IDUsuario: "1.5", ID: "9"}, want: 9, wantOK: true},
		{name: "infinity rejected", user: AuthUser{ID: "Inf"}, wantOK: false},
		{name: "whole float accepted", user: AuthUser{ID: "7.0"}, want: 7, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.user.NumericID()
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAuthUser_Identifier(t *testing.T) {
	assert.Equal(t, "42", AuthUser{IDUsuario: "42", ID: "x"}.Identifier())
	assert.Equal(t, "usr_demo", AuthUser{ID: "usr_demo"}.Identifier())
	assert.Equal(t, "", AuthUser{}.Identifier())
}

func TestAuthUser_Apply_ShallowMerge(t *testing.T) {
	base := AuthUser{
		IDUsuario:        "1",
		Name:             "Ana",
		Email:            "ana@example.com",
		FinancialProfile: ProfileModerado,
		MonthlySalary:    Float64(5000),
	}

	got := base.Apply(UserPatch{
		Name:           String("Ana Maria"),
		CurrentBalance: Float64(120.5),
	})

	want := base.Clone()
	want.Name = "Ana Maria"
	want.CurrentBalance = Float64(120.5)

	assert.Empty(t, cmp.Diff(want, got))
	// the original is untouched
	assert.Equal(t, "Ana", base.Name)
	assert.Nil(t, base.CurrentBalance)
}

func TestAuthUser_CloneDoesNotShareMoney(t *testing.T) {
	u := AuthUser{CurrentBalance: Float64(10)}
	c := u.Clone()
	*c.CurrentBalance = 99
	assert.Equal(t, 10.0, *u.CurrentBalance)
}

func TestFinancialProfile_ValidAndLabel(t *testing.T) {
	for _, p := range FinancialProfiles {
		assert.True(t, p.Valid(), p)
		assert.NotEmpty(t, p.Label())
	}
	assert.False(t, FinancialProfile("ARROJADO").Valid())
	assert.Equal(t, "Agressivo", ProfileAgressivo.Label())
}

func TestUpdateUserPayload(t *testing.T) {
	assert.True(t, UpdateUserPayload{}.Empty())
	assert.False(t, UpdateUserPayload{}.HasProfile())

	p := UpdateUserPayload{PerfilFinanceiro: String("agressivo")}
	assert.True(t, p.HasProfile())
	assert.False(t, p.Empty())
}
