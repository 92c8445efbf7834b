package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sebuszqo/FinanceTracker/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// windowIs matches a DateRange by instant, ignoring the location it is expressed in.
type windowIs domain.DateRange

func (w windowIs) Matches(x any) bool {
	window, ok := x.(domain.DateRange)
	return ok && window.Start.Equal(w.Start) && window.End.Equal(w.End)
}

func (w windowIs) String() string {
	return fmt.Sprintf("window [%s, %s)", w.Start, w.End)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newReportService(t *testing.T) (*ReportService, *domain.MockExpenseRepository, *domain.MockIncomeRepository) {
	ctrl := gomock.NewController(t)
	expenses := domain.NewMockExpenseRepository(ctrl)
	income := domain.NewMockIncomeRepository(ctrl)
	svc := NewReportService(expenses, income, log.Nop())
	svc.now = clock
	return svc, expenses, income
}

func TestReportService_Window(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		want      domain.DateRange
		wantErr   error
	}{
		{
			name: "defaults to 90 days ending now",
			want: domain.DateRange{Start: fixedNow.Add(-domain.DefaultReportWindow), End: fixedNow},
		},
		{
			name:      "end date is inclusive",
			startDate: "2025-01-01",
			endDate:   "2025-01-31",
			want:      domain.DateRange{Start: day(2025, time.January, 1), End: day(2025, time.February, 1)},
		},
		{
			name:    "only end date",
			endDate: "2025-03-31",
			want:    domain.DateRange{Start: day(2025, time.April, 1).Add(-domain.DefaultReportWindow), End: day(2025, time.April, 1)},
		},
		{
			name:      "only start date",
			startDate: "2025-03-01",
			want:      domain.DateRange{Start: day(2025, time.March, 1), End: fixedNow},
		},
		{
			name:      "timestamps are taken as is",
			startDate: "2025-01-01T00:00:00Z",
			endDate:   "2025-01-01T12:00:00Z",
			want:      domain.DateRange{Start: day(2025, time.January, 1), End: day(2025, time.January, 1).Add(12 * time.Hour)},
		},
		{
			name:      "inverted",
			startDate: "2025-02-01",
			endDate:   "2025-01-01",
			wantErr:   financeErrors.ErrInvalidDateRange,
		},
		{
			name:      "malformed",
			startDate: "yesterday",
			wantErr:   financeErrors.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newReportService(t)
			window, err := svc.Window(tt.startDate, tt.endDate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Start.Equal(window.Start), "start %s", window.Start)
			assert.True(t, tt.want.End.Equal(window.End), "end %s", window.End)
		})
	}
}

func TestReportService_Report(t *testing.T) {
	svc, expenses, income := newReportService(t)
	food := newCategory(domain.CategoryTypeExpense, "Food")
	salary := newCategory(domain.CategoryTypeIncome, "Salary")

	window := domain.DateRange{Start: day(2025, time.January, 1), End: day(2025, time.February, 1)}
	previous := domain.DateRange{Start: day(2024, time.December, 1), End: day(2025, time.January, 1)}

	current := []domain.Expense{
		expenseOn(food, 60, day(2025, time.January, 5)),
		expenseOn(nil, 50, day(2025, time.January, 10)),
		expenseOn(food, 40, day(2025, time.January, 20)),
	}
	paycheck := incomeOn(500, day(2025, time.January, 15))
	paycheck.Source = salary.Ref()

	expenses.EXPECT().FindInRange(gomock.Any(), testUserID, windowIs(window)).Return(current, nil)
	income.EXPECT().FindInRange(gomock.Any(), testUserID, windowIs(window)).Return([]domain.Income{paycheck}, nil)
	expenses.EXPECT().FindInRange(gomock.Any(), testUserID, windowIs(previous)).
		Return([]domain.Expense{expenseOn(food, 100, day(2024, time.December, 3))}, nil)
	income.EXPECT().FindInRange(gomock.Any(), testUserID, windowIs(previous)).
		Return([]domain.Income{incomeOn(400, day(2024, time.December, 15))}, nil)

	report, err := svc.Report(context.Background(), testUserID, window)
	require.NoError(t, err)

	assert.Equal(t, domain.ReportSummary{
		TotalIncome:   500,
		TotalExpenses: 150,
		NetSavings:    350,
		SavingsRate:   70,
		IncomeGrowth:  25,
		ExpenseGrowth: 50,
	}, report.Summary)

	assert.Equal(t, []domain.MonthlyBreakdown{
		{Month: "January 2025", Income: 500, Expenses: 150, Savings: 350},
	}, report.MonthlyBreakdown)

	assert.Equal(t, []domain.TopCategory{
		{Category: "Food", Amount: 100, Percentage: 66.7},
		{Category: domain.OtherCategoryName, Amount: 50, Percentage: 33.3},
	}, report.TopExpenseCategories)

	assert.Equal(t, 4, report.TotalTransactions)
	require.Len(t, report.Transactions.Expenses, 3)
	assert.Equal(t, current[2].ID, report.Transactions.Expenses[0].ID)
	assert.Equal(t, domain.OtherCategoryName, report.Transactions.Expenses[1].Category)
	assert.Equal(t, "expense", report.Transactions.Expenses[0].Type)
	require.Len(t, report.Transactions.Income, 1)
	assert.Equal(t, "Salary", report.Transactions.Income[0].Category)
	assert.Equal(t, "income", report.Transactions.Income[0].Type)
}

func TestReportService_ReportWithoutHistoryHasNoGrowth(t *testing.T) {
	svc, expenses, income := newReportService(t)
	window := domain.DateRange{Start: day(2025, time.January, 1), End: day(2025, time.February, 1)}

	expenses.EXPECT().FindInRange(gomock.Any(), testUserID, windowIs(window)).
		Return([]domain.Expense{expenseOn(nil, 20, day(2025, time.January, 2))}, nil)
	income.EXPECT().FindInRange(gomock.Any(), testUserID, windowIs(window)).Return(nil, nil)
	expenses.EXPECT().FindInRange(gomock.Any(), testUserID, gomock.Not(windowIs(window))).Return(nil, nil)
	income.EXPECT().FindInRange(gomock.Any(), testUserID, gomock.Not(windowIs(window))).Return(nil, nil)

	report, err := svc.Report(context.Background(), testUserID, window)
	require.NoError(t, err)
	assert.Zero(t, report.Summary.ExpenseGrowth)
	assert.Zero(t, report.Summary.IncomeGrowth)
	assert.Zero(t, report.Summary.SavingsRate)
	assert.Equal(t, -20.0, report.Summary.NetSavings)
	assert.Empty(t, report.Transactions.Income)
}

func TestReportService_TopCategoriesLimitedToFive(t *testing.T) {
	var current []domain.Expense
	for i := 1; i <= 7; i++ {
		category := newCategory(domain.CategoryTypeExpense, fmt.Sprintf("C%d", i))
		current = append(current, expenseOn(category, float64(i*10), day(2025, time.January, i)))
	}

	top := topCategories(current, sumExpenses(current))
	require.Len(t, top, domain.TopExpenseCategories)
	assert.Equal(t, "C7", top[0].Category)
	assert.Equal(t, "C3", top[4].Category)
}

func TestReportService_ReportFailsWhenAQueryFails(t *testing.T) {
	svc, expenses, income := newReportService(t)
	boom := errors.New("db down")

	expenses.EXPECT().FindInRange(gomock.Any(), testUserID, gomock.Any()).Return(nil, boom).AnyTimes()
	income.EXPECT().FindInRange(gomock.Any(), testUserID, gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := svc.Report(context.Background(), testUserID, domain.DateRange{Start: day(2025, time.January, 1), End: day(2025, time.February, 1)})
	assert.ErrorIs(t, err, boom)
}

func TestReportService_ExportCSV(t *testing.T) {
	svc, expenses, income := newReportService(t)
	food := newCategory(domain.CategoryTypeExpense, "Food")
	window := domain.DateRange{Start: day(2025, time.January, 1), End: day(2025, time.February, 1)}

	lunch := expenseOn(food, 12.5, day(2025, time.January, 3))
	lunch.Description = "Lunch, with team"
	paycheck := incomeOn(1000, day(2025, time.January, 10))

	expenses.EXPECT().FindInRange(gomock.Any(), testUserID, windowIs(window)).Return([]domain.Expense{lunch}, nil)
	income.EXPECT().FindInRange(gomock.Any(), testUserID, windowIs(window)).Return([]domain.Income{paycheck}, nil)

	export, err := svc.Export(context.Background(), testUserID, window)
	require.NoError(t, err)
	assert.Equal(t, 2, export.Summary.TotalTransactions)
	assert.Equal(t, 12.5, export.Summary.TotalExpenses)
	assert.Equal(t, 1000.0, export.Summary.TotalIncome)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, export))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Type", "Description", "Category", "Amount"},
		{"2025-01-03", "expense", "Lunch, with team", "Food", "12.50"},
		{"2025-01-10", "income", "income", domain.OtherCategoryName, "1000.00"},
	}, records)
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", domain.ExportFormatCSV, false},
		{"CSV", domain.ExportFormatCSV, false},
		{"json", domain.ExportFormatJSON, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ExportFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, financeErrors.ErrUnsupportedExportFormat)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "financial-report-2025-03-15.csv", ExportFilename(domain.ExportFormatCSV, fixedNow))
}
