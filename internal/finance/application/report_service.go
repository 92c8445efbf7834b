package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sebuszqo/FinanceTracker/internal/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	transactionTypeExpense = "expense"
	transactionTypeIncome  = "income"
)

type ReportService struct {
	expenses domain.ExpenseRepository
	income   domain.IncomeRepository
	logger   *log.Logger
	now      func() time.Time
}

func NewReportService(expenses domain.ExpenseRepository, income domain.IncomeRepository, logger *log.Logger) *ReportService {
	return &ReportService{
		expenses: expenses,
		income:   income,
		logger:   logger.WithComponent(log.ComponentReports),
		now:      time.Now,
	}
}

// Window resolves the startDate/endDate query values. A plain date as endDate covers that
// whole day. Missing bounds default to a 90-day window ending now.
func (s *ReportService) Window(startDate, endDate string) (domain.DateRange, error) {
	var window domain.DateRange

	if strings.TrimSpace(endDate) != "" {
		end, err := domain.ParseDate(endDate)
		if err != nil {
			return window, err
		}
		if !strings.Contains(endDate, "T") {
			end = end.Add(24 * time.Hour)
		}
		window.End = end
	} else {
		window.End = s.now().UTC()
	}

	if strings.TrimSpace(startDate) != "" {
		start, err := domain.ParseDate(startDate)
		if err != nil {
			return window, err
		}
		window.Start = start
	} else {
		window.Start = window.End.Add(-domain.DefaultReportWindow)
	}

	if !window.Start.Before(window.End) {
		return window, financeErrors.ErrInvalidDateRange
	}
	return window, nil
}

func (s *ReportService) Report(ctx context.Context, userID string, window domain.DateRange) (*domain.Report, error) {
	previous := domain.DateRange{
		Start: window.Start.Add(-window.End.Sub(window.Start)),
		End:   window.Start,
	}

	var (
		expenses, previousExpenses []domain.Expense
		income, previousIncome     []domain.Income
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expenses, err = s.expenses.FindInRange(gctx, userID, window)
		return err
	})
	g.Go(func() (err error) {
		income, err = s.income.FindInRange(gctx, userID, window)
		return err
	})
	g.Go(func() (err error) {
		previousExpenses, err = s.expenses.FindInRange(gctx, userID, previous)
		return err
	})
	g.Go(func() (err error) {
		previousIncome, err = s.income.FindInRange(gctx, userID, previous)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalExpenses := sumExpenses(expenses)
	totalIncome := sumIncome(income)
	netSavings := totalIncome.Sub(totalExpenses)

	report := &domain.Report{
		Summary: domain.ReportSummary{
			TotalIncome:   cents(totalIncome),
			TotalExpenses: cents(totalExpenses),
			NetSavings:    cents(netSavings),
			SavingsRate:   percentOf(netSavings, totalIncome),
			IncomeGrowth:  growth(totalIncome, sumIncome(previousIncome)),
			ExpenseGrowth: growth(totalExpenses, sumExpenses(previousExpenses)),
		},
		MonthlyBreakdown:     monthlyBreakdown(expenses, income),
		TopExpenseCategories: topCategories(expenses, totalExpenses),
		TotalTransactions:    len(expenses) + len(income),
		DateRange:            domain.ReportDateRange{Start: window.Start, End: window.End},
		Transactions: domain.ReportTransactions{
			Expenses: expenseTransactions(expenses),
			Income:   incomeTransactions(income),
		},
	}

	s.logger.Debug().
		Str(log.FieldUserID, userID).
		Int("transactions", report.TotalTransactions).
		Msg("Report computed")
	return report, nil
}

// Export lists the transactions of the window, newest first, with their totals.
func (s *ReportService) Export(ctx context.Context, userID string, window domain.DateRange) (*domain.Export, error) {
	var (
		expenses []domain.Expense
		income   []domain.Income
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expenses, err = s.expenses.FindInRange(gctx, userID, window)
		return err
	})
	g.Go(func() (err error) {
		income, err = s.income.FindInRange(gctx, userID, window)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Export{
		Expenses: expenseTransactions(expenses),
		Income:   incomeTransactions(income),
		Summary: domain.ExportSummary{
			TotalExpenses:     cents(sumExpenses(expenses)),
			TotalIncome:       cents(sumIncome(income)),
			TotalTransactions: len(expenses) + len(income),
			DateRange:         domain.ReportDateRange{Start: window.Start, End: window.End},
		},
	}, nil
}

func sumExpenses(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(money(expense.Amount))
	}
	return total
}

func sumIncome(income []domain.Income) decimal.Decimal {
	total := decimal.Zero
	for _, inc := range income {
		total = total.Add(money(inc.Amount))
	}
	return total
}

func monthlyBreakdown(expenses []domain.Expense, income []domain.Income) []domain.MonthlyBreakdown {
	byMonth := make(map[string]*monthTotals)
	labels := make(map[string]string)
	bucket := func(t time.Time) *monthTotals {
		key := monthKey(t)
		totals, ok := byMonth[key]
		if !ok {
			totals = &monthTotals{}
			byMonth[key] = totals
			labels[key] = t.UTC().Format("January 2006")
		}
		return totals
	}
	for _, expense := range expenses {
		totals := bucket(expense.Date)
		totals.expenses = totals.expenses.Add(money(expense.Amount))
	}
	for _, inc := range income {
		totals := bucket(inc.Date)
		totals.income = totals.income.Add(money(inc.Amount))
	}

	keys := make([]string, 0, len(byMonth))
	for key := range byMonth {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	breakdown := make([]domain.MonthlyBreakdown, 0, len(keys))
	for _, key := range keys {
		totals := byMonth[key]
		breakdown = append(breakdown, domain.MonthlyBreakdown{
			Month:    labels[key],
			Income:   cents(totals.income),
			Expenses: cents(totals.expenses),
			Savings:  cents(totals.income.Sub(totals.expenses)),
		})
	}
	return breakdown
}

func topCategories(expenses []domain.Expense, total decimal.Decimal) []domain.TopCategory {
	byName := make(map[string]decimal.Decimal)
	for _, expense := range expenses {
		name := categoryName(expense.Category)
		byName[name] = byName[name].Add(money(expense.Amount))
	}

	top := make([]domain.TopCategory, 0, len(byName))
	for name, amount := range byName {
		top = append(top, domain.TopCategory{
			Category:   name,
			Amount:     cents(amount),
			Percentage: percentOf(amount, total),
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Amount != top[j].Amount {
			return top[i].Amount > top[j].Amount
		}
		return top[i].Category < top[j].Category
	})
	if len(top) > domain.TopExpenseCategories {
		top = top[:domain.TopExpenseCategories]
	}
	return top
}

func categoryName(ref *domain.CategoryRef) string {
	if ref == nil || ref.Name == "" {
		return domain.OtherCategoryName
	}
	return ref.Name
}

// expenseTransactions flattens expenses newest first. FindInRange returns them oldest first.
func expenseTransactions(expenses []domain.Expense) []domain.ReportTransaction {
	transactions := make([]domain.ReportTransaction, 0, len(expenses))
	for i := len(expenses) - 1; i >= 0; i-- {
		expense := expenses[i]
		transactions = append(transactions, domain.ReportTransaction{
			ID:          expense.ID,
			Description: expense.Description,
			Amount:      expense.Amount,
			Category:    categoryName(expense.Category),
			Date:        expense.Date,
			Type:        transactionTypeExpense,
		})
	}
	return transactions
}

func incomeTransactions(income []domain.Income) []domain.ReportTransaction {
	transactions := make([]domain.ReportTransaction, 0, len(income))
	for i := len(income) - 1; i >= 0; i-- {
		inc := income[i]
		transactions = append(transactions, domain.ReportTransaction{
			ID:          inc.ID,
			Description: inc.Description,
			Amount:      inc.Amount,
			Category:    categoryName(inc.Source),
			Date:        inc.Date,
			Type:        transactionTypeIncome,
		})
	}
	return transactions
}
