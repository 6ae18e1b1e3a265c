// Package fakebackend is an in-process stand-in for the finance REST API,
// used by tests across the client packages. It keeps state in memory and
// speaks the same request/response shapes as the real backend.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/go-chi/chi/v5"
)

// User is a backend-side account.
type User struct {
	ID               int64
	Nome             string
	Email            string
	Senha            string
	PerfilFinanceiro string
	SalarioMensal    *float64
	SaldoAtual       float64
	SaldoInicial     *float64
}

// Backend holds the fake server state. Exported knobs may be changed by
// tests before issuing requests.
type Backend struct {
	mu sync.Mutex

	users  map[string]*User
	tokens map[string]int64
	cards  map[int64][]models.CreditCard
	nextID int64

	// FailLogin makes /loginUser answer 500 with this message when non-empty.
	FailLogin string
	// StrictProfile makes /atualizarUsuario reject "agressivo" like the
	// stricter deployments do.
	StrictProfile bool
	// Details is returned inside the overview for the selected card.
	Details *models.CreditCardDetails
	// Dashboard is returned by /api/dashboard/getSummary.
	Dashboard models.DashboardData

	calls []string
}

func New() *Backend {
	return &Backend{
		users:  make(map[string]*User),
		tokens: make(map[string]int64),
		cards:  make(map[int64][]models.CreditCard),
		nextID: 1,
	}
}

// Start serves the backend on an httptest server closed at test cleanup.
func (b *Backend) Start(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return srv
}

// AddUser registers an account directly and returns its id.
func (b *Backend) AddUser(u User) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(u)
}

func (b *Backend) addUserLocked(u User) int64 {
	u.ID = b.nextID
	b.nextID++
	if u.SaldoInicial != nil {
		u.SaldoAtual = *u.SaldoInicial
	}
	b.users[strings.ToLower(u.Email)] = &u
	return u.ID
}

// User returns a copy of the account stored under email.
func (b *Backend) User(email string) (User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[strings.ToLower(email)]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// IssueToken mints a valid token for the account under email without
// going through /loginUser. It returns "" for unknown accounts.
func (b *Backend) IssueToken(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[strings.ToLower(email)]
	if !ok {
		return ""
	}
	return b.mintTokenLocked(u.ID)
}

// mintTokenLocked issues an opaque bearer token for userID.
func (b *Backend) mintTokenLocked(userID int64) string {
	suffix, err := common.MakeRandHexString(8)
	if err != nil {
		suffix = strconv.Itoa(len(b.tokens) + 1)
	}
	token := fmt.Sprintf("tok-%d-%s", userID, suffix)
	b.tokens[token] = userID
	return token
}

// SetCards replaces the card list of a user.
func (b *Backend) SetCards(userID int64, cards []models.CreditCard) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cards[userID] = cards
}

// Calls returns "METHOD route" entries in arrival order.
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)

	r.Post("/loginUser", b.login)
	r.Post("/createUser", b.createUser)

	r.Group(func(r chi.Router) {
		r.Use(b.requireToken)
		r.Get("/userSaldo", b.getSaldo)
		r.Put("/userSaldo", b.putSaldo)
		r.Put("/atualizarUsuario/{userID}", b.updateUser)

		r.Route("/api", func(r chi.Router) {
			r.Get("/cartoes/{userID}", b.listCards)
			r.Get("/getCartoesVisaoGeral/{userID}", b.overview)
			r.Post("/criarCartao/{userID}", b.createCard)
			r.Put("/editarCartoes/{userID}/{uuid}", b.editCard)
			r.Patch("/cartoes/{userID}/{uuid}/ativar", b.toggleCard)
			r.Post("/cartoes/{userID}/{cardID}/pagarFatura", b.payInvoice)
			r.Get("/dashboard/getSummary", b.dashboard)
		})
	})
	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Token não fornecido."})
			return
		}
		b.mu.Lock()
		_, known := b.tokens[token]
		b.mu.Unlock()
		if !known {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": map[string]any{"message": "Token inválido."}})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) userByToken(r *http.Request) *User {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	id := b.tokens[token]
	for _, u := range b.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Senha string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "JSON inválido."})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailLogin != "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": b.FailLogin})
		return
	}

	u, ok := b.users[strings.ToLower(req.Email)]
	if !ok || u.Senha != req.Senha {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Credenciais inválidas."})
		return
	}

	token := b.mintTokenLocked(u.ID)

	user := map[string]any{
		"id_usuario":        u.ID,
		"nome":              u.Nome,
		"email":             u.Email,
		"perfil_financeiro": u.PerfilFinanceiro,
		"saldo_atual":       u.SaldoAtual,
	}
	if u.SalarioMensal != nil {
		user["salario_mensal"] = *u.SalarioMensal
	}
	if u.SaldoInicial != nil {
		user["saldo_inicial"] = *u.SaldoInicial
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User struct {
			Nome             string   `json:"nome"`
			Email            string   `json:"email"`
			SenhaHash        string   `json:"senha_hash"`
			PerfilFinanceiro string   `json:"perfil_financeiro"`
			SalarioMensal    *float64 `json:"salario_mensal"`
			SaldoInicial     *float64 `json:"saldo_inicial"`
		} `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "JSON inválido."})
		return
	}
	if req.User.Email == "" || req.User.SenhaHash == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []map[string]any{{"msg": "email e senha são obrigatórios"}}})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.users[strings.ToLower(req.User.Email)]; exists {
		writeJSON(w, http.StatusConflict, map[string]any{"error": map[string]any{"message": "E-mail já cadastrado."}})
		return
	}

	id := b.addUserLocked(User{
		Nome:             req.User.Nome,
		Email:            req.User.Email,
		Senha:            req.User.SenhaHash,
		PerfilFinanceiro: req.User.PerfilFinanceiro,
		SalarioMensal:    req.User.SalarioMensal,
		SaldoInicial:     req.User.SaldoInicial,
	})
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Usuário criado.",
		"status":  http.StatusCreated,
		"data":    map[string]any{"id_usuario": id},
	})
}

func (b *Backend) getSaldo(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.userByToken(r)
	writeJSON(w, http.StatusOK, map[string]any{"saldo_atual": u.SaldoAtual})
}

func (b *Backend) putSaldo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SaldoAtual *float64 `json:"saldo_atual"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SaldoAtual == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []map[string]any{{"msg": "saldo_atual é obrigatório"}}})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.userByToken(r)
	u.SaldoAtual = *req.SaldoAtual
	writeJSON(w, http.StatusOK, map[string]any{"saldo_atual": u.SaldoAtual})
}

func (b *Backend) updateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nome             *string `json:"nome"`
		PerfilFinanceiro *string `json:"perfil_financeiro"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "JSON inválido."})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	u := b.userByToken(r)
	if strconv.FormatInt(u.ID, 10) != chi.URLParam(r, "userID") {
		writeJSON(w, http.StatusForbidden, map[string]any{"message": "Acesso negado."})
		return
	}
	if req.PerfilFinanceiro != nil {
		allowed := map[string]bool{"conservador": true, "moderado": true, "agressivo": !b.StrictProfile, "arrojado": true}
		if !allowed[*req.PerfilFinanceiro] {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []map[string]any{{"msg": "Validation failed: perfil_financeiro inválido"}}})
			return
		}
		u.PerfilFinanceiro = *req.PerfilFinanceiro
	}
	if req.Nome != nil {
		u.Nome = *req.Nome
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Usuário atualizado."})
}

func (b *Backend) pathUserID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	return id
}

func (b *Backend) listCards(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cards := b.cards[b.pathUserID(r)]
	if cards == nil {
		cards = []models.CreditCard{}
	}
	writeJSON(w, http.StatusOK, cards)
}

func (b *Backend) overview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ano, _ := strconv.Atoi(q.Get("ano"))
	mes, _ := strconv.Atoi(q.Get("mes"))
	selected := q.Get("cartao_uuid")

	b.mu.Lock()
	defer b.mu.Unlock()

	cards := b.cards[b.pathUserID(r)]
	resp := models.CreditCardsOverview{
		Periodo: models.Period{Ano: ano, Mes: mes},
		Cartoes: cards,
	}
	for _, c := range cards {
		if c.UUID == selected {
			s := selected
			resp.CartaoSelecionadoUUID = &s
			resp.Detalhes = b.Details
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (b *Backend) createCard(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCreditCardDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nome == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []map[string]any{{"msg": "nome é obrigatório"}}})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	userID := b.pathUserID(r)
	card := models.CreditCard{
		UUID:             fmt.Sprintf("card-%d-%d", userID, len(b.cards[userID])+1),
		Nome:             req.Nome,
		Bandeira:         req.Bandeira,
		Ultimos4:         req.Ultimos4,
		CorHex:           req.CorHex,
		DiaFechamento:    req.DiaFechamento,
		DiaVencimento:    req.DiaVencimento,
		Limite:           req.Limite,
		LimiteDisponivel: req.Limite,
	}
	b.cards[userID] = append(b.cards[userID], card)
	writeJSON(w, http.StatusCreated, card)
}

func (b *Backend) findCard(r *http.Request) *models.CreditCard {
	cards := b.cards[b.pathUserID(r)]
	uuid := chi.URLParam(r, "uuid")
	for i := range cards {
		if cards[i].UUID == uuid {
			return &cards[i]
		}
	}
	return nil
}

func (b *Backend) editCard(w http.ResponseWriter, r *http.Request) {
	var req models.EditCreditCardDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "JSON inválido."})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	card := b.findCard(r)
	if card == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Cartão não encontrado."})
		return
	}
	if req.Nome != nil {
		card.Nome = *req.Nome
	}
	if req.Limite != nil {
		card.Limite = *req.Limite
		card.LimiteDisponivel = card.Limite - card.LimiteUsado
	}
	if req.DiaFechamento != nil {
		card.DiaFechamento = *req.DiaFechamento
	}
	if req.DiaVencimento != nil {
		card.DiaVencimento = *req.DiaVencimento
	}
	if req.CorHex != nil {
		card.CorHex = req.CorHex
	}
	writeJSON(w, http.StatusOK, card)
}

func (b *Backend) toggleCard(w http.ResponseWriter, r *http.Request) {
	ativo := r.URL.Query().Get("ativo") == "true"

	b.mu.Lock()
	defer b.mu.Unlock()

	card := b.findCard(r)
	if card == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Cartão não encontrado."})
		return
	}
	card.Ativo = &ativo
	writeJSON(w, http.StatusOK, models.CardStatus{Ativo: ativo})
}

func (b *Backend) payInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.PayInvoiceDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ValorPagamento <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []map[string]any{{"msg": "valorPagamento inválido"}}})
		return
	}
	writeJSON(w, http.StatusOK, models.InvoicePaymentResponse{
		Mensagem:     "Pagamento registrado.",
		StatusFatura: models.InvoicePaid,
		ValorPago:    req.ValorPagamento,
	})
}

func (b *Backend) dashboard(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.Dashboard)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
