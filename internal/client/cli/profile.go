package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/client/services"
)

// Balance refreshes the balance from the backend and prints it.
func (a *App) Balance(ctx context.Context) error {
	var saldo float64
	err := a.withBusy(ctx, "Consultando saldo", func(ctx context.Context) error {
		var err error
		saldo, err = a.profileService.RefreshBalance(ctx)
		return err
	})
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Saldo atual: %s\n", formatMoney(saldo))
	return nil
}

// EditProfile prompts for name, financial profile and balance. Blank answers
// keep the current values.
func (a *App) EditProfile(ctx context.Context) error {
	u, ok := a.session.User()
	if !ok {
		return a.fail(services.ErrNotAuthenticated)
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Nome (Enter = %s)", u.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = u.Name
	}
	fp, err := a.askProfile(u.FinancialProfile)
	if err != nil {
		return err
	}
	balancePrompt := "Saldo atual (Enter = manter)"
	if u.CurrentBalance != nil {
		balancePrompt = fmt.Sprintf("Saldo atual (Enter = %s)", formatMoney(*u.CurrentBalance))
	}
	balance, err := getSimpleText(a.reader, balancePrompt, a.out)
	if err != nil {
		return err
	}

	var res services.SaveResult
	err = a.withBusy(ctx, "Salvando perfil", func(ctx context.Context) error {
		var err error
		res, err = a.profileService.Save(ctx, services.ProfileChanges{Name: name, Profile: fp, BalanceText: balance})
		return err
	})
	if err != nil {
		return a.fail(err)
	}

	switch {
	case res.BalanceChanged && (res.NameChanged || res.ProfileChanged):
		fmt.Fprintln(a.out, "Perfil e saldo atualizados.")
	case res.BalanceChanged:
		fmt.Fprintln(a.out, "Saldo atualizado.")
	default:
		fmt.Fprintln(a.out, "Perfil atualizado.")
	}
	return nil
}
