package application

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/log"
	"github.com/shopspring/decimal"
)

type AnalyticsService struct {
	expenses  domain.ExpenseRepository
	income    domain.IncomeRepository
	locations LocationResolver
	logger    *log.Logger
	now       func() time.Time
}

func NewAnalyticsService(expenses domain.ExpenseRepository, income domain.IncomeRepository, locations LocationResolver, logger *log.Logger) *AnalyticsService {
	return &AnalyticsService{
		expenses:  expenses,
		income:    income,
		locations: locations,
		logger:    logger.WithComponent(log.ComponentAnalytics),
		now:       time.Now,
	}
}

type monthTotals struct {
	income   decimal.Decimal
	expenses decimal.Decimal
}

type categoryTotal struct {
	id     uuid.UUID
	name   string
	color  string
	amount decimal.Decimal
}

// Overview aggregates the last N calendar months, the current one included. The user's timezone
// decides which month is current; transactions are bucketed by their UTC calendar date.
func (s *AnalyticsService) Overview(ctx context.Context, userID, period string) (*domain.Overview, error) {
	period, months := domain.AnalyticsPeriodMonths(period)

	loc, err := s.locations.Location(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := domain.CalendarDay(s.now(), loc)
	start := time.Date(today.Year(), today.Month()-time.Month(months-1), 1, 0, 0, 0, 0, time.UTC)
	window := domain.DateRange{Start: start, End: today.AddDate(0, 0, 1)}

	expenses, err := s.expenses.FindInRange(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	income, err := s.income.FindInRange(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*monthTotals, months)
	bucket := func(t time.Time) *monthTotals {
		key := monthKey(t)
		totals, ok := byMonth[key]
		if !ok {
			totals = &monthTotals{}
			byMonth[key] = totals
		}
		return totals
	}

	totalExpenses := decimal.Zero
	byCategory := make(map[uuid.UUID]*categoryTotal)
	for _, expense := range expenses {
		amount := money(expense.Amount)
		totalExpenses = totalExpenses.Add(amount)
		totals := bucket(expense.Date)
		totals.expenses = totals.expenses.Add(amount)

		category, ok := byCategory[expense.CategoryID]
		if !ok {
			category = &categoryTotal{id: expense.CategoryID, name: domain.OtherCategoryName, color: domain.DefaultCategoryColor}
			if expense.Category != nil {
				category.name = expense.Category.Name
				category.color = expense.Category.Color
			}
			byCategory[expense.CategoryID] = category
		}
		category.amount = category.amount.Add(amount)
	}

	totalIncome := decimal.Zero
	for _, inc := range income {
		amount := money(inc.Amount)
		totalIncome = totalIncome.Add(amount)
		totals := bucket(inc.Date)
		totals.income = totals.income.Add(amount)
	}

	overview := &domain.Overview{
		Period:              period,
		MonthlyTrends:       make([]domain.MonthlyTrend, 0, months),
		SavingsRate:         make([]domain.SavingsRate, 0, months),
		ExpenseDistribution: distribution(byCategory, totalExpenses),
		TotalIncome:         cents(totalIncome),
		TotalExpenses:       cents(totalExpenses),
		NetSavings:          cents(totalIncome.Sub(totalExpenses)),
	}

	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0)
		totals, ok := byMonth[monthKey(month)]
		if !ok {
			totals = &monthTotals{}
		}
		savings := totals.income.Sub(totals.expenses)
		label := month.Format("Jan")

		overview.MonthlyTrends = append(overview.MonthlyTrends, domain.MonthlyTrend{
			Month:    label,
			Income:   cents(totals.income),
			Expenses: cents(totals.expenses),
			Savings:  cents(savings),
		})
		overview.SavingsRate = append(overview.SavingsRate, domain.SavingsRate{
			Month: label,
			Rate:  percentOf(savings, totals.income),
		})
	}

	s.logger.Debug().
		Str(log.FieldUserID, userID).
		Str(log.FieldPeriod, period).
		Int("expenses", len(expenses)).
		Int("income", len(income)).
		Msg("Analytics overview computed")
	return overview, nil
}

func distribution(byCategory map[uuid.UUID]*categoryTotal, total decimal.Decimal) []domain.CategoryShare {
	shares := make([]domain.CategoryShare, 0, len(byCategory))
	for _, category := range byCategory {
		shares = append(shares, domain.CategoryShare{
			CategoryID: category.id,
			Category:   category.name,
			Color:      category.color,
			Amount:     cents(category.amount),
			Percentage: percentOf(category.amount, total),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}
