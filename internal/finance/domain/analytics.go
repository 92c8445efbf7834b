package domain

import "github.com/google/uuid"

const (
	AnalyticsPeriod3Months = "3-months"
	AnalyticsPeriod6Months = "6-months"
	AnalyticsPeriod1Year   = "1-year"
)

// AnalyticsPeriodMonths maps a period selector to its month count; unknown selectors mean 6 months.
func AnalyticsPeriodMonths(period string) (string, int) {
	switch period {
	case AnalyticsPeriod3Months:
		return period, 3
	case AnalyticsPeriod1Year:
		return period, 12
	default:
		return AnalyticsPeriod6Months, 6
	}
}

type MonthlyTrend struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

type SavingsRate struct {
	Month string  `json:"month"`
	Rate  float64 `json:"rate"`
}

type CategoryShare struct {
	CategoryID uuid.UUID `json:"categoryId"`
	Category   string    `json:"category"`
	Color      string    `json:"color"`
	Amount     float64   `json:"amount"`
	Percentage float64   `json:"percentage"`
}

type Overview struct {
	Period              string          `json:"period"`
	MonthlyTrends       []MonthlyTrend  `json:"monthlyTrends"`
	SavingsRate         []SavingsRate   `json:"savingsRate"`
	ExpenseDistribution []CategoryShare `json:"expenseDistribution"`
	TotalIncome         float64         `json:"totalIncome"`
	TotalExpenses       float64         `json:"totalExpenses"`
	NetSavings          float64         `json:"netSavings"`
}
