package models

type TransactionType string

const (
	TransactionIncome  TransactionType = "receita"
	TransactionExpense TransactionType = "despesa"
)

type Transaction struct {
	ID        string          `json:"id"`
	Titulo    string          `json:"titulo"`
	Valor     float64         `json:"valor"`
	Data      string          `json:"data"`
	Tipo      TransactionType `json:"tipo"`
	Categoria string          `json:"categoria"`
	Metodo    string          `json:"metodo,omitempty"`
}

type ChartData struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type FinancialSummary struct {
	SaldoAtual float64 `json:"saldoAtual"`
	Receitas   float64 `json:"receitas"`
	Despesas   float64 `json:"despesas"`
	Balanco    float64 `json:"balanco"`
}

type ExpenseBreakdown struct {
	Fixas         float64 `json:"fixas"`
	Variaveis     float64 `json:"variaveis"`
	CartaoCredito float64 `json:"cartaoCredito"`
}

// DashboardData is the body of GET /api/dashboard/getSummary.
type DashboardData struct {
	Usuario struct {
		Nome string `json:"nome"`
	} `json:"usuario"`
	ResumoFinanceiro     FinancialSummary `json:"resumoFinanceiro"`
	DetalhamentoDespesas ExpenseBreakdown `json:"detalhamentoDespesas"`
	FeedTransacoes       []Transaction    `json:"feedTransacoes"`
	Graficos             []ChartData      `json:"graficos"`
}
