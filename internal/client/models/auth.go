// Package models holds the client-side data model: the canonical
// authenticated user, the token/user pairing returned by login and
// register, request DTOs, and the payloads exchanged with the REST backend.
package models

import (
	"math"
	"strconv"
	"strings"
)

// FinancialProfile is the user's investment risk tolerance as the
// application sees it. It is a closed enum: only the three constants below
// are valid in memory.
type FinancialProfile string

const (
	ProfileConservador FinancialProfile = "CONSERVADOR"
	ProfileModerado    FinancialProfile = "MODERADO"
	ProfileAgressivo   FinancialProfile = "AGRESSIVO"
)

// FinancialProfiles lists the enum values in display order.
var FinancialProfiles = []FinancialProfile{ProfileConservador, ProfileModerado, ProfileAgressivo}

// Label returns a human readable label for the profile.
func (p FinancialProfile) Label() string {
	switch p {
	case ProfileConservador:
		return "Conservador"
	case ProfileAgressivo:
		return "Agressivo"
	default:
		return "Moderado"
	}
}

// Valid reports whether p is one of the three known values.
func (p FinancialProfile) Valid() bool {
	switch p {
	case ProfileConservador, ProfileModerado, ProfileAgressivo:
		return true
	}
	return false
}

// AuthUser is the signed-in identity.
//
// The backend renamed its identifier field over time; both spellings are
// kept here and resolved through NumericID / Identifier, never by callers
// poking at the fields directly.
type AuthUser struct {
	IDUsuario        string           `json:"id_usuario,omitempty"`
	ID               string           `json:"id,omitempty"`
	Name             string           `json:"nome"`
	Email            string           `json:"email"`
	FinancialProfile FinancialProfile `json:"perfil_financeiro"`
	MonthlySalary    *float64         `json:"salario_mensal,omitempty"`
	CurrentBalance   *float64         `json:"saldo_atual,omitempty"`
	InitialBalance   *float64         `json:"saldo_inicial,omitempty"`
}

// identifierCandidates is the migration shim for the renamed id field:
// modern name first, legacy name second.
func (u AuthUser) identifierCandidates() []string {
	return []string{u.IDUsuario, u.ID}
}

// Identifier returns the first non-empty identifier, modern field first.
func (u AuthUser) Identifier() string {
	for _, c := range u.identifierCandidates() {
		if c != "" {
			return c
		}
	}
	return ""
}

// NumericID resolves the numeric user id from the modern or legacy field.
// A candidate counts only if it parses to a finite whole number.
// Fractional ids such as "1.5" are treated as absent, since the result is an int64.
func (u AuthUser) NumericID() (int64, bool) {
	for _, c := range u.identifierCandidates() {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		n, err := strconv.ParseFloat(c, 64)
		if err != nil || math.IsInf(n, 0) || math.IsNaN(n) || n != math.Trunc(n) {
			continue
		}
		return int64(n), true
	}
	return 0, false
}

// Apply returns a copy of u with every non-nil field of p merged in.
// Fields absent from the patch are preserved.
func (u AuthUser) Apply(p UserPatch) AuthUser {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FinancialProfile != nil {
		u.FinancialProfile = *p.FinancialProfile
	}
	if p.MonthlySalary != nil {
		u.MonthlySalary = float64Ptr(*p.MonthlySalary)
	}
	if p.CurrentBalance != nil {
		u.CurrentBalance = float64Ptr(*p.CurrentBalance)
	}
	if p.InitialBalance != nil {
		u.InitialBalance = float64Ptr(*p.InitialBalance)
	}
	return u
}

// Clone returns a deep copy of u so callers never share the pointer fields.
func (u AuthUser) Clone() AuthUser {
	c := u
	if u.MonthlySalary != nil {
		c.MonthlySalary = float64Ptr(*u.MonthlySalary)
	}
	if u.CurrentBalance != nil {
		c.CurrentBalance = float64Ptr(*u.CurrentBalance)
	}
	if u.InitialBalance != nil {
		c.InitialBalance = float64Ptr(*u.InitialBalance)
	}
	return c
}

// UserPatch is a partial AuthUser. A nil field means "not part of the patch".
type UserPatch struct {
	Name             *string
	Email            *string
	FinancialProfile *FinancialProfile
	MonthlySalary    *float64
	CurrentBalance   *float64
	InitialBalance   *float64
}

// AuthResult pairs the bearer token with the user it authenticates.
type AuthResult struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// LoginDTO carries login credentials.
type LoginDTO struct {
	Email    string
	Password string
}

// RegisterDTO carries everything needed to create an account.
type RegisterDTO struct {
	FullName         string
	Email            string
	Password         string
	FinancialProfile FinancialProfile
	Salary           *float64
	InitialBalance   *float64
}

func float64Ptr(v float64) *float64 { return &v }

// Float64 returns a pointer to v. Handy for building patches and DTOs.
func Float64(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Profile returns a pointer to p.
func Profile(p FinancialProfile) *FinancialProfile { return &p }
