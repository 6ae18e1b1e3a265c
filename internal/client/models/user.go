package models

// UserSaldo is the body of GET/PUT /userSaldo.
type UserSaldo struct {
	SaldoAtual float64 `json:"saldo_atual"`
}

// UpdateUserPayload is the body of PUT /atualizarUsuario/:userId.
// Nil fields are omitted from the request.
type UpdateUserPayload struct {
	Nome             *string `json:"nome,omitempty"`
	PerfilFinanceiro *string `json:"perfil_financeiro,omitempty"`
}

// HasProfile reports whether the payload carries a profile field.
func (p UpdateUserPayload) HasProfile() bool {
	return p.PerfilFinanceiro != nil
}

// Empty reports whether the payload carries nothing to send.
func (p UpdateUserPayload) Empty() bool {
	return p.Nome == nil && p.PerfilFinanceiro == nil
}
