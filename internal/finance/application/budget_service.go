package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

// LocationResolver returns the timezone calendar windows are computed in for a user.
type LocationResolver interface {
	Location(ctx context.Context, userID string) (*time.Location, error)
}

type CreateBudgetInput struct {
	CategoryID string   `json:"categoryId"`
	Amount     *float64 `json:"budget"`
	Period     string   `json:"period"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
}

// UpdateBudgetInput changes the amount and dates of a budget. An empty EndDate clears it.
type UpdateBudgetInput struct {
	Amount    *float64 `json:"budget"`
	StartDate *string  `json:"startDate"`
	EndDate   *string  `json:"endDate"`
}

type BudgetService struct {
	budgets    domain.BudgetRepository
	categories domain.CategoryRepository
	expenses   domain.ExpenseRepository
	locations  LocationResolver
	now        func() time.Time
}

func NewBudgetService(budgets domain.BudgetRepository, categories domain.CategoryRepository, expenses domain.ExpenseRepository, locations LocationResolver) *BudgetService {
	return &BudgetService{
		budgets:    budgets,
		categories: categories,
		expenses:   expenses,
		locations:  locations,
		now:        time.Now,
	}
}

func (s *BudgetService) List(ctx context.Context, userID, period string) ([]domain.Budget, error) {
	if period != "" && !domain.IsValidBudgetPeriod(period) {
		return nil, financeErrors.ErrInvalidBudgetPeriod
	}
	return s.budgets.FindByUser(ctx, userID, period)
}

func (s *BudgetService) Get(ctx context.Context, userID string, budgetID uuid.UUID) (*domain.Budget, error) {
	return s.budgets.FindByID(ctx, userID, budgetID)
}

func (s *BudgetService) Create(ctx context.Context, userID string, input CreateBudgetInput) (*domain.Budget, error) {
	amount, err := requiredAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	period := strings.TrimSpace(input.Period)
	if period == "" {
		period = domain.BudgetPeriodMonthly
	}
	if !domain.IsValidBudgetPeriod(period) {
		return nil, financeErrors.ErrInvalidBudgetPeriod
	}
	category, err := ownedCategory(ctx, s.categories, userID, input.CategoryID, domain.CategoryTypeExpense, financeErrors.ErrInvalidCategory)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	startDate, err := parseOptionalDate(input.StartDate, now)
	if err != nil {
		return nil, err
	}
	endDate, err := parseEndDate(input.EndDate, startDate)
	if err != nil {
		return nil, err
	}

	budget := &domain.Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: category.ID,
		Category:   category.Ref(),
		Amount:     amount,
		Period:     period,
		StartDate:  startDate,
		EndDate:    endDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *BudgetService) Update(ctx context.Context, userID string, budgetID uuid.UUID, input UpdateBudgetInput) (*domain.Budget, error) {
	budget, err := s.budgets.FindByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		amount, err := requiredAmount(input.Amount)
		if err != nil {
			return nil, err
		}
		budget.Amount = amount
	}
	if input.StartDate != nil {
		startDate, err := domain.ParseDate(*input.StartDate)
		if err != nil {
			return nil, err
		}
		budget.StartDate = startDate
	}
	if input.EndDate != nil {
		endDate, err := parseEndDate(*input.EndDate, budget.StartDate)
		if err != nil {
			return nil, err
		}
		budget.EndDate = endDate
	} else if budget.EndDate != nil && budget.EndDate.Before(budget.StartDate) {
		return nil, financeErrors.ErrInvalidDateRange
	}
	budget.UpdatedAt = s.now().UTC()

	if err := s.budgets.Update(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID string, budgetID uuid.UUID) error {
	return s.budgets.Delete(ctx, userID, budgetID)
}

// Progress reports spending against the budget for the period window containing now.
func (s *BudgetService) Progress(ctx context.Context, userID string, budgetID uuid.UUID) (*domain.BudgetProgress, error) {
	budget, err := s.budgets.FindByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	loc, err := s.locations.Location(ctx, userID)
	if err != nil {
		return nil, err
	}

	window := domain.PeriodWindow(budget.Period, s.now(), loc)
	spent, err := s.expenses.SumByCategory(ctx, userID, budget.CategoryID, window)
	if err != nil {
		return nil, err
	}

	limit := money(budget.Amount)
	spentAmount := money(spent)
	return &domain.BudgetProgress{
		Budget:      budget,
		Spent:       cents(spentAmount),
		Remaining:   cents(limit.Sub(spentAmount)),
		Percentage:  percentOf(spentAmount, limit),
		PeriodStart: window.Start,
		PeriodEnd:   window.End,
	}, nil
}

func parseEndDate(value string, startDate time.Time) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	endDate, err := domain.ParseDate(value)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, financeErrors.ErrInvalidDateRange
	}
	return &endDate, nil
}
