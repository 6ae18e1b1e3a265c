package services

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/cards"
	"github.com/dmitrijs2005/finkeeper/internal/client/session"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

// DefaultCardColor is used for cards without a colour of their own.
const DefaultCardColor = "#6C5CE7"

// OverviewRequest selects the period and the card the user last looked at.
type OverviewRequest struct {
	Year          int
	Month         int
	PreferredUUID string
}

// CardsView is the normalized overview. Every card has a brand, last4 and
// colour set. SelectedUUID is empty only when there are no cards.
type CardsView struct {
	Period       models.Period
	Cards        []models.CreditCard
	SelectedUUID string
	Details      *models.CreditCardDetails
}

type CardsService interface {
	LoadAllThenOverview(ctx context.Context, req OverviewRequest) (CardsView, error)
	Create(ctx context.Context, dto models.CreateCreditCardDTO) (models.CreditCard, error)
	Edit(ctx context.Context, cardUUID string, dto models.EditCreditCardDTO) (models.CreditCard, error)
	ToggleStatus(ctx context.Context, cardUUID string, active bool) (models.CardStatus, error)
	PayInvoice(ctx context.Context, cardID string, dto models.PayInvoiceDTO) (models.InvoicePaymentResponse, error)
}

type cardsService struct {
	repo    cards.Repository
	session *session.Session
	log     logging.Logger
}

func NewCardsService(repo cards.Repository, sess *session.Session, log logging.Logger) CardsService {
	return &cardsService{repo: repo, session: sess, log: log}
}

func (s *cardsService) credentials() (string, int64, error) {
	token, ok := s.session.Token()
	if !ok {
		return "", 0, ErrNotAuthenticated
	}
	u, ok := s.session.User()
	if !ok {
		return "", 0, ErrNotAuthenticated
	}
	id, ok := u.NumericID()
	if !ok {
		return "", 0, ErrNotAuthenticated
	}
	return token, id, nil
}

// LoadAllThenOverview lists the cards first, because only that endpoint
// guarantees UUIDs, then asks for the overview of a card known to exist:
// the preferred one if it is still listed, otherwise the first.
func (s *cardsService) LoadAllThenOverview(ctx context.Context, req OverviewRequest) (CardsView, error) {
	token, userID, err := s.credentials()
	if err != nil {
		return CardsView{}, err
	}

	all, err := s.repo.List(ctx, token, userID)
	if err != nil {
		return CardsView{}, err
	}
	if len(all) == 0 || all[0].UUID == "" {
		return CardsView{Period: models.Period{Ano: req.Year, Mes: req.Month}}, nil
	}

	target := all[0].UUID
	if req.PreferredUUID != "" {
		for _, c := range all {
			if c.UUID == req.PreferredUUID {
				target = req.PreferredUUID
				break
			}
		}
	}

	ov, err := s.repo.Overview(ctx, token, userID, cards.OverviewQuery{
		Year: req.Year, Month: req.Month, CardUUID: target,
	})
	if err != nil {
		return CardsView{}, err
	}

	view := CardsView{
		Period:  ov.Periodo,
		Cards:   normalizeCards(ov.Cartoes),
		Details: ov.Detalhes,
	}
	switch {
	case ov.CartaoSelecionadoUUID != nil && *ov.CartaoSelecionadoUUID != "":
		view.SelectedUUID = *ov.CartaoSelecionadoUUID
	case target != "":
		view.SelectedUUID = target
	case len(view.Cards) > 0:
		view.SelectedUUID = view.Cards[0].UUID
	}
	s.log.Debug(ctx, "cards overview loaded", "cards", len(view.Cards), "selected", view.SelectedUUID)
	return view, nil
}

func normalizeCards(in []models.CreditCard) []models.CreditCard {
	out := make([]models.CreditCard, len(in))
	for i, c := range in {
		if c.Bandeira == nil {
			b := models.BrandOther
			c.Bandeira = &b
		}
		if c.Ultimos4 == nil {
			c.Ultimos4 = models.String("")
		}
		if c.CorHex == nil {
			c.CorHex = models.String(DefaultCardColor)
		}
		out[i] = c
	}
	return out
}

func (s *cardsService) Create(ctx context.Context, dto models.CreateCreditCardDTO) (models.CreditCard, error) {
	token, userID, err := s.credentials()
	if err != nil {
		return models.CreditCard{}, err
	}
	return s.repo.Create(ctx, token, userID, dto)
}

func (s *cardsService) Edit(ctx context.Context, cardUUID string, dto models.EditCreditCardDTO) (models.CreditCard, error) {
	token, userID, err := s.credentials()
	if err != nil {
		return models.CreditCard{}, err
	}
	return s.repo.Edit(ctx, token, userID, cardUUID, dto)
}

func (s *cardsService) ToggleStatus(ctx context.Context, cardUUID string, active bool) (models.CardStatus, error) {
	token, userID, err := s.credentials()
	if err != nil {
		return models.CardStatus{}, err
	}
	return s.repo.SetActive(ctx, token, userID, cardUUID, active)
}

func (s *cardsService) PayInvoice(ctx context.Context, cardID string, dto models.PayInvoiceDTO) (models.InvoicePaymentResponse, error) {
	token, userID, err := s.credentials()
	if err != nil {
		return models.InvoicePaymentResponse{}, err
	}
	return s.repo.PayInvoice(ctx, token, userID, cardID, dto)
}
