package models

// CreditCardBrand is the card network as reported by the backend.
type CreditCardBrand string

const (
	BrandVisa       CreditCardBrand = "Visa"
	BrandMastercard CreditCardBrand = "Mastercard"
	BrandElo        CreditCardBrand = "Elo"
	BrandAmex       CreditCardBrand = "American Express"
	BrandHipercard  CreditCardBrand = "Hipercard"
	BrandDiners     CreditCardBrand = "Diners"
	BrandDiscover   CreditCardBrand = "Discover"
	BrandOther      CreditCardBrand = "Outro"
)

// CreditCard is an entry of GET api/cartoes/:userId and of the overview list.
type CreditCard struct {
	UUID             string           `json:"uuid_cartao"`
	Nome             string           `json:"nome"`
	Bandeira         *CreditCardBrand `json:"bandeira"`
	Ultimos4         *string          `json:"ultimos4"`
	CorHex           *string          `json:"corHex"`
	DiaFechamento    int              `json:"diaFechamento"`
	DiaVencimento    int              `json:"diaVencimento"`
	Limite           float64          `json:"limite"`
	LimiteUsado      float64          `json:"limiteUsado"`
	LimiteDisponivel float64          `json:"limiteDisponivel"`
	PercentualUsado  float64          `json:"percentualUsado"`
	Ativo            *bool            `json:"ativo,omitempty"`
}

// CardSummary is the header block of CreditCardDetails.
type CardSummary struct {
	UUID             string           `json:"uuid_cartao"`
	Nome             string           `json:"nome"`
	Bandeira         *CreditCardBrand `json:"bandeira"`
	Ultimos4         *string          `json:"ultimos4"`
	CorHex           *string          `json:"corHex"`
	Limite           float64          `json:"limite"`
	LimiteUsado      float64          `json:"limiteUsado"`
	LimiteDisponivel float64          `json:"limiteDisponivel"`
	DiaFechamento    int              `json:"diaFechamento"`
	DiaVencimento    int              `json:"diaVencimento"`
	Ativo            bool             `json:"ativo"`
}

type CategoryTotal struct {
	Categoria string  `json:"categoria"`
	Valor     float64 `json:"valor"`
}

type Installment struct {
	IDLancamento  int64   `json:"idLancamento"`
	Descricao     string  `json:"descricao"`
	ValorParcela  float64 `json:"valorParcela"`
	ParcelaAtual  int     `json:"parcelaAtual"`
	TotalParcelas int     `json:"totalParcelas"`
	ParcelasPagas int     `json:"parcelasPagas"`
	Restam        int     `json:"restam"`
}

type InstallmentPosition struct {
	Atual int `json:"atual"`
	Total int `json:"total"`
}

// CardTransaction is a single purchase on a card statement.
type CardTransaction struct {
	IDLancamento int64               `json:"idLancamento"`
	Descricao    string              `json:"descricao"`
	Categoria    string              `json:"categoria"`
	DataCompra   string              `json:"dataCompra"`
	Valor        float64             `json:"valor"`
	Parcela      InstallmentPosition `json:"parcela"`
}

type MonthlySpending struct {
	Total float64           `json:"total"`
	Itens []CardTransaction `json:"itens"`
}

// CreditCardDetails is the per-card breakdown embedded in the overview.
type CreditCardDetails struct {
	ResumoCartao   CardSummary     `json:"resumoCartao"`
	PorCategoria   []CategoryTotal `json:"porCategoria"`
	ParcelasAtivas []Installment   `json:"parcelasAtivas"`
	GastosDoMes    MonthlySpending `json:"gastosDoMes"`
}

type Period struct {
	Ano int `json:"ano"`
	Mes int `json:"mes"`
}

// CreditCardsOverview is the body of GET api/getCartoesVisaoGeral/:userId.
type CreditCardsOverview struct {
	Periodo               Period             `json:"periodo"`
	Cartoes               []CreditCard       `json:"cartoes"`
	CartaoSelecionadoUUID *string            `json:"cartaoSelecionadoUuid"`
	Detalhes              *CreditCardDetails `json:"detalhes"`
}

// CreateCreditCardDTO is the body of POST api/criarCartao/:userId.
type CreateCreditCardDTO struct {
	Nome          string           `json:"nome"`
	Bandeira      *CreditCardBrand `json:"bandeira,omitempty"`
	Ultimos4      *string          `json:"ultimos4,omitempty"`
	CorHex        *string          `json:"corHex,omitempty"`
	Limite        float64          `json:"limite"`
	DiaFechamento int              `json:"diaFechamento"`
	DiaVencimento int              `json:"diaVencimento"`
}

// EditCreditCardDTO is a partial CreateCreditCardDTO.
type EditCreditCardDTO struct {
	Nome          *string          `json:"nome,omitempty"`
	Bandeira      *CreditCardBrand `json:"bandeira,omitempty"`
	Ultimos4      *string          `json:"ultimos4,omitempty"`
	CorHex        *string          `json:"corHex,omitempty"`
	Limite        *float64         `json:"limite,omitempty"`
	DiaFechamento *int             `json:"diaFechamento,omitempty"`
	DiaVencimento *int             `json:"diaVencimento,omitempty"`
}

// CardStatus is the body returned when toggling a card.
type CardStatus struct {
	Ativo bool `json:"ativo"`
}

// PayInvoiceDTO is the body of POST api/cartoes/:userId/:cardId/pagarFatura.
type PayInvoiceDTO struct {
	ValorPagamento float64 `json:"valorPagamento"`
	Ano            int     `json:"ano"`
	Mes            int     `json:"mes"`
}

type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "PAGA"
	InvoiceOpen    InvoiceStatus = "ABERTA"
	InvoiceOverdue InvoiceStatus = "VENCIDA"
)

type InvoicePaymentResponse struct {
	Mensagem     string        `json:"mensagem"`
	StatusFatura InvoiceStatus `json:"statusFatura"`
	ValorPago    float64       `json:"valorPago"`
	Restante     float64       `json:"restante"`
}
