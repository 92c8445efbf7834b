package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"

	DefaultReportWindow  = 90 * 24 * time.Hour
	TopExpenseCategories = 5
)

type ReportSummary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetSavings    float64 `json:"netSavings"`
	SavingsRate   float64 `json:"savingsRate"`
	IncomeGrowth  float64 `json:"incomeGrowth"`
	ExpenseGrowth float64 `json:"expenseGrowth"`
}

type MonthlyBreakdown struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

type TopCategory struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type ReportTransaction struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
}

type ReportDateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ReportTransactions struct {
	Expenses []ReportTransaction `json:"expenses"`
	Income   []ReportTransaction `json:"income"`
}

type Report struct {
	Summary              ReportSummary      `json:"summary"`
	MonthlyBreakdown     []MonthlyBreakdown `json:"monthlyBreakdown"`
	TopExpenseCategories []TopCategory      `json:"topExpenseCategories"`
	TotalTransactions    int                `json:"totalTransactions"`
	DateRange            ReportDateRange    `json:"dateRange"`
	Transactions         ReportTransactions `json:"transactions"`
}

type ExportSummary struct {
	TotalExpenses     float64         `json:"totalExpenses"`
	TotalIncome       float64         `json:"totalIncome"`
	TotalTransactions int             `json:"totalTransactions"`
	DateRange         ReportDateRange `json:"dateRange"`
}

// Export is the JSON variant of a report download.
type Export struct {
	Expenses []ReportTransaction `json:"expenses"`
	Income   []ReportTransaction `json:"income"`
	Summary  ExportSummary       `json:"summary"`
}
