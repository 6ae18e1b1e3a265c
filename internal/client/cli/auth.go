package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/validation"
	"github.com/dmitrijs2005/finkeeper/internal/common"
)

// getSimpleText, getPassword and getOptionalNumber are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText     = GetSimpleText
	getPassword       = GetPassword
	getOptionalNumber = GetOptionalNumber
)

// Register prompts for the registration form and creates the account via
// the AuthService. On success the session is signed in.
//
// Password bytes are wiped before returning. Validation and service errors
// are printed and returned unchanged.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Nome completo", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Senha")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.out, "Confirme a senha")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	fp, err := a.askProfile(models.ProfileModerado)
	if err != nil {
		return err
	}
	salary, err := getOptionalNumber(a.reader, "Salário mensal (opcional)", a.out)
	if err != nil {
		return a.fail(err)
	}
	initial, err := getOptionalNumber(a.reader, "Saldo inicial (opcional)", a.out)
	if err != nil {
		return a.fail(err)
	}

	in := validation.RegisterInput{
		FullName:         fullName,
		Email:            email,
		Password:         string(password),
		ConfirmPassword:  string(confirm),
		FinancialProfile: fp,
		Salary:           salary,
		InitialBalance:   initial,
	}

	var user models.AuthUser
	err = a.withBusy(ctx, "Criando conta", func(ctx context.Context) error {
		var err error
		user, err = a.authService.Register(ctx, in)
		return err
	})
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "Conta criada. Olá, %s!\n", user.Name)
	return nil
}

// Login prompts for credentials and signs the session in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Senha")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	var user models.AuthUser
	err = a.withBusy(ctx, "Entrando", func(ctx context.Context) error {
		var err error
		user, err = a.authService.Login(ctx, models.LoginDTO{Email: email, Password: string(password)})
		return err
	})
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "Olá, %s!\n", user.Name)
	return nil
}

// Logout clears the session and forgets the selected card.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout()
	a.selectedCard = ""
	fmt.Fprintln(a.out, "Sessão encerrada.")
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.session.User()
	if !ok {
		fmt.Fprintln(a.out, "Ninguém conectado.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	if id := u.Identifier(); id != "" {
		fmt.Fprintf(a.out, "  id: %s\n", id)
	}
	fmt.Fprintf(a.out, "  perfil: %s\n", u.FinancialProfile.Label())
	if u.CurrentBalance != nil {
		fmt.Fprintf(a.out, "  saldo: %s\n", formatMoney(*u.CurrentBalance))
	}
	if u.MonthlySalary != nil {
		fmt.Fprintf(a.out, "  salário: %s\n", formatMoney(*u.MonthlySalary))
	}
	return nil
}

// askProfile lets the user pick a financial profile by number or name.
// A blank answer keeps def.
func (a *App) askProfile(def models.FinancialProfile) (models.FinancialProfile, error) {
	var b strings.Builder
	b.WriteString("Perfil financeiro")
	for i, p := range models.FinancialProfiles {
		fmt.Fprintf(&b, " [%d] %s", i+1, p.Label())
	}
	fmt.Fprintf(&b, " (Enter = %s)", def.Label())

	for {
		answer, err := getSimpleText(a.reader, b.String(), a.out)
		if err != nil {
			return "", err
		}
		if fp, ok := parseProfile(answer, def); ok {
			return fp, nil
		}
		fmt.Fprintln(a.out, "Opção inválida.")
	}
}

func parseProfile(answer string, def models.FinancialProfile) (models.FinancialProfile, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, true
	}
	for i, p := range models.FinancialProfiles {
		if answer == fmt.Sprint(i+1) || strings.EqualFold(answer, string(p)) {
			return p, true
		}
	}
	return "", false
}
