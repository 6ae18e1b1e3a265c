package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

// Dashboard prints the financial summary. "dashboard" uses the backend's
// default period; "dashboard <month> <year>" picks one.
func (a *App) Dashboard(ctx context.Context, args []string) error {
	var month, year int
	if len(args) > 0 {
		m, err := strconv.Atoi(args[0])
		if err != nil || m < 1 || m > 12 {
			fmt.Fprintln(a.out, "Uso: dashboard [mês ano]")
			return errUsage
		}
		month = m
		year = a.now().Year()
		if len(args) > 1 {
			y, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintln(a.out, "Uso: dashboard [mês ano]")
				return errUsage
			}
			year = y
		}
	}

	var data models.DashboardData
	err := a.withBusy(ctx, "Carregando resumo", func(ctx context.Context) error {
		var err error
		data, err = a.dashboardService.Summary(ctx, month, year)
		return err
	})
	if err != nil {
		return a.fail(err)
	}

	r := data.ResumoFinanceiro
	fmt.Fprintf(a.out, "Resumo de %s\n", data.Usuario.Nome)
	fmt.Fprintf(a.out, "  Saldo:    %s\n", formatMoney(r.SaldoAtual))
	fmt.Fprintf(a.out, "  Receitas: %s\n", formatMoney(r.Receitas))
	fmt.Fprintf(a.out, "  Despesas: %s\n", formatMoney(r.Despesas))
	fmt.Fprintf(a.out, "  Balanço:  %s\n", formatMoney(r.Balanco))

	d := data.DetalhamentoDespesas
	fmt.Fprintf(a.out, "Despesas: fixas %s, variáveis %s, cartão %s\n",
		formatMoney(d.Fixas), formatMoney(d.Variaveis), formatMoney(d.CartaoCredito))

	for _, t := range data.FeedTransacoes {
		sign := "+"
		if t.Tipo == models.TransactionExpense {
			sign = "-"
		}
		fmt.Fprintf(a.out, "  %s %s %-24s %s\n", t.Data, sign, t.Titulo, formatMoney(t.Valor))
	}
	return nil
}
