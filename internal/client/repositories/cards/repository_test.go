package cards

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/testutil/fakebackend"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*APIRepository, *fakebackend.Backend, string, int64) {
	t.Helper()
	b := fakebackend.New()
	srv := b.Start(t)
	id := b.AddUser(fakebackend.User{Nome: "Ana", Email: "ana@x.com", Senha: "12345678"})
	return NewAPIRepository(client.NewHTTPClient(srv.URL)), b, b.IssueToken("ana@x.com"), id
}

func TestList_EmptyAndPopulated(t *testing.T) {
	repo, b, token, id := setup(t)
	ctx := context.Background()

	got, err := repo.List(ctx, token, id)
	require.NoError(t, err)
	assert.Empty(t, got)

	cards := []models.CreditCard{{UUID: "c1", Nome: "Nubank", Limite: 1000}}
	b.SetCards(id, cards)

	got, err = repo.List(ctx, token, id)
	require.NoError(t, err)
	if diff := cmp.Diff(cards, got); diff != "" {
		t.Fatalf("cards mismatch (-want +got):\n%s", diff)
	}
}

func TestOverview_SendsQuery(t *testing.T) {
	repo, b, token, id := setup(t)
	b.SetCards(id, []models.CreditCard{{UUID: "c1"}, {UUID: "c2"}})
	b.Details = &models.CreditCardDetails{GastosDoMes: models.MonthlySpending{Total: 99}}

	ov, err := repo.Overview(context.Background(), token, id, OverviewQuery{Year: 2025, Month: 3, CardUUID: "c2"})
	require.NoError(t, err)

	assert.Equal(t, models.Period{Ano: 2025, Mes: 3}, ov.Periodo)
	require.NotNil(t, ov.CartaoSelecionadoUUID)
	assert.Equal(t, "c2", *ov.CartaoSelecionadoUUID)
	require.NotNil(t, ov.Detalhes)
	assert.Equal(t, 99.0, ov.Detalhes.GastosDoMes.Total)
}

func TestCreateEditToggleAndPay(t *testing.T) {
	repo, b, token, id := setup(t)
	ctx := context.Background()

	card, err := repo.Create(ctx, token, id, models.CreateCreditCardDTO{
		Nome: "Inter", Limite: 500, DiaFechamento: 5, DiaVencimento: 12,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, card.UUID)
	assert.Equal(t, 500.0, card.LimiteDisponivel)

	limit := 800.0
	edited, err := repo.Edit(ctx, token, id, card.UUID, models.EditCreditCardDTO{Limite: &limit})
	require.NoError(t, err)
	assert.Equal(t, 800.0, edited.Limite)
	assert.Equal(t, "Inter", edited.Nome)

	st, err := repo.SetActive(ctx, token, id, card.UUID, true)
	require.NoError(t, err)
	assert.True(t, st.Ativo)

	paid, err := repo.PayInvoice(ctx, token, id, card.UUID, models.PayInvoiceDTO{ValorPagamento: 100, Ano: 2025, Mes: 3})
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, paid.StatusFatura)

	assert.Contains(t, b.Calls(), "PATCH /api/cartoes/1/"+card.UUID+"/ativar")
}

func TestEdit_UnknownCard(t *testing.T) {
	repo, _, token, id := setup(t)

	_, err := repo.Edit(context.Background(), token, id, "missing", models.EditCreditCardDTO{})
	require.Error(t, err)
	assert.Equal(t, "Cartão não encontrado.", client.MessageOf(err))
}

func TestList_Unauthorized(t *testing.T) {
	repo, _, _, id := setup(t)

	_, err := repo.List(context.Background(), "", id)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}
