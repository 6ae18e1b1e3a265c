package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/services"
	"github.com/dmitrijs2005/finkeeper/internal/client/validation"
	"github.com/dmitrijs2005/finkeeper/internal/common"
)

// describeError turns err into the line shown to the user.
func describeError(err error) string {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		keys := make([]string, 0, len(ve.Fields))
		for k := range ve.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msgs := make([]string, 0, len(keys))
		for _, k := range keys {
			msgs = append(msgs, "  - "+ve.Fields[k])
		}
		return "Verifique os campos:\n" + strings.Join(msgs, "\n")
	case errors.Is(err, client.ErrUnavailable):
		return "Não foi possível conectar ao servidor."
	case errors.Is(err, services.ErrNotAuthenticated):
		return "Sessão inválida. Faça login novamente."
	case errors.Is(err, services.ErrNothingToSave):
		return "Nada para salvar."
	case errors.Is(err, services.ErrNameRequired):
		return "Nome é obrigatório."
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, common.ErrInvalidNumber):
		return "Valor inválido."
	}
	return "Erro: " + client.MessageOf(err)
}

// formatMoney renders v as Brazilian reais, e.g. "R$ 1.234,56".
func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), frac)
}
