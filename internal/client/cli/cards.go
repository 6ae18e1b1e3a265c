package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/services"
)

var errUsage = errors.New("usage")

// Cards shows the overview for the current month. "cards <uuid>" selects a
// card; otherwise the last selected card is kept if it still exists.
func (a *App) Cards(ctx context.Context, args []string) error {
	if len(args) > 0 {
		a.selectedCard = args[0]
	}
	now := a.now()

	var view services.CardsView
	err := a.withBusy(ctx, "Carregando cartões", func(ctx context.Context) error {
		var err error
		view, err = a.cardsService.LoadAllThenOverview(ctx, services.OverviewRequest{
			Year:          now.Year(),
			Month:         int(now.Month()),
			PreferredUUID: a.selectedCard,
		})
		return err
	})
	if err != nil {
		return a.fail(err)
	}

	a.selectedCard = view.SelectedUUID
	if len(view.Cards) == 0 {
		fmt.Fprintln(a.out, "Nenhum cartão cadastrado. Use 'addcard'.")
		return nil
	}

	fmt.Fprintf(a.out, "Cartões %02d/%d\n", view.Period.Mes, view.Period.Ano)
	for _, c := range view.Cards {
		marker := " "
		if c.UUID == view.SelectedUUID {
			marker = "*"
		}
		status := ""
		if c.Ativo != nil && !*c.Ativo {
			status = " (inativo)"
		}
		fmt.Fprintf(a.out, "%s %s  %s •••• %s  %s de %s%s\n", marker, c.UUID, c.Nome,
			deref(c.Ultimos4), formatMoney(c.LimiteUsado), formatMoney(c.Limite), status)
	}

	if d := view.Details; d != nil {
		fmt.Fprintf(a.out, "\n%s: fecha dia %d, vence dia %d\n", d.ResumoCartao.Nome,
			d.ResumoCartao.DiaFechamento, d.ResumoCartao.DiaVencimento)
		fmt.Fprintf(a.out, "Gastos do mês: %s\n", formatMoney(d.GastosDoMes.Total))
		for _, it := range d.GastosDoMes.Itens {
			fmt.Fprintf(a.out, "  %s  %-24s %s\n", it.DataCompra, it.Descricao, formatMoney(it.Valor))
		}
		for _, p := range d.ParcelasAtivas {
			fmt.Fprintf(a.out, "  parcela %d/%d  %s  %s\n", p.ParcelaAtual, p.TotalParcelas, p.Descricao, formatMoney(p.ValorParcela))
		}
	}
	return nil
}

// AddCard prompts for a new card.
func (a *App) AddCard(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Nome do cartão", a.out)
	if err != nil {
		return err
	}
	brand, err := getSimpleText(a.reader, "Bandeira (opcional)", a.out)
	if err != nil {
		return err
	}
	last4, err := getSimpleText(a.reader, "Últimos 4 dígitos (opcional)", a.out)
	if err != nil {
		return err
	}
	limit, err := getOptionalNumber(a.reader, "Limite", a.out)
	if err != nil {
		return a.fail(err)
	}
	closing, err := a.askDay("Dia de fechamento")
	if err != nil {
		return err
	}
	due, err := a.askDay("Dia de vencimento")
	if err != nil {
		return err
	}

	dto := models.CreateCreditCardDTO{
		Nome:          name,
		CorHex:        stringPtr(services.DefaultCardColor),
		DiaFechamento: closing,
		DiaVencimento: due,
	}
	if brand != "" {
		b := models.CreditCardBrand(brand)
		dto.Bandeira = &b
	}
	if last4 != "" {
		dto.Ultimos4 = &last4
	}
	if limit != nil {
		dto.Limite = *limit
	}

	var card models.CreditCard
	err = a.withBusy(ctx, "Criando cartão", func(ctx context.Context) error {
		var err error
		card, err = a.cardsService.Create(ctx, dto)
		return err
	})
	if err != nil {
		return a.fail(err)
	}
	a.selectedCard = card.UUID
	fmt.Fprintf(a.out, "Cartão %q criado.\n", card.Nome)
	return nil
}

// EditCard updates name and limit of the card given as argument. Blank
// answers leave the field unchanged.
func (a *App) EditCard(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Uso: editcard <uuid>")
		return errUsage
	}
	name, err := getSimpleText(a.reader, "Novo nome (Enter = manter)", a.out)
	if err != nil {
		return err
	}
	limit, err := getOptionalNumber(a.reader, "Novo limite (Enter = manter)", a.out)
	if err != nil {
		return a.fail(err)
	}

	dto := models.EditCreditCardDTO{Limite: limit}
	if name != "" {
		dto.Nome = &name
	}

	err = a.withBusy(ctx, "Salvando cartão", func(ctx context.Context) error {
		_, err := a.cardsService.Edit(ctx, args[0], dto)
		return err
	})
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Cartão atualizado.")
	return nil
}

// ToggleCard activates or deactivates a card: "togglecard <uuid> on|off".
func (a *App) ToggleCard(ctx context.Context, args []string) error {
	if len(args) < 2 || (args[1] != "on" && args[1] != "off") {
		fmt.Fprintln(a.out, "Uso: togglecard <uuid> on|off")
		return errUsage
	}

	var st models.CardStatus
	err := a.withBusy(ctx, "Atualizando cartão", func(ctx context.Context) error {
		var err error
		st, err = a.cardsService.ToggleStatus(ctx, args[0], args[1] == "on")
		return err
	})
	if err != nil {
		return a.fail(err)
	}
	if st.Ativo {
		fmt.Fprintln(a.out, "Cartão ativado.")
	} else {
		fmt.Fprintln(a.out, "Cartão desativado.")
	}
	return nil
}

// PayInvoice pays the current month's invoice: "payinvoice <cardId>".
func (a *App) PayInvoice(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Uso: payinvoice <cardId>")
		return errUsage
	}
	amount, err := getOptionalNumber(a.reader, "Valor do pagamento", a.out)
	if err != nil {
		return a.fail(err)
	}
	if amount == nil || *amount <= 0 {
		return a.fail(services.ErrInvalidAmount)
	}
	now := a.now()

	var res models.InvoicePaymentResponse
	err = a.withBusy(ctx, "Pagando fatura", func(ctx context.Context) error {
		var err error
		res, err = a.cardsService.PayInvoice(ctx, args[0], models.PayInvoiceDTO{
			ValorPagamento: *amount,
			Ano:            now.Year(),
			Mes:            int(now.Month()),
		})
		return err
	})
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "%s Pago %s, restante %s (%s).\n", res.Mensagem,
		formatMoney(res.ValorPago), formatMoney(res.Restante), res.StatusFatura)
	return nil
}

func (a *App) askDay(prompt string) (int, error) {
	for {
		answer, err := getSimpleText(a.reader, prompt+" (1-31)", a.out)
		if err != nil {
			return 0, err
		}
		d, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && d >= 1 && d <= 31 {
			return d, nil
		}
		fmt.Fprintln(a.out, "Dia inválido.")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringPtr(s string) *string { return &s }
