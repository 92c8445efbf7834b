package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type CreateExpenseInput struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	CategoryID  string   `json:"categoryId"`
	Date        string   `json:"date"`
	Receipt     string   `json:"receipt"`
	Notes       string   `json:"notes"`
}

type UpdateExpenseInput struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	CategoryID  *string  `json:"categoryId"`
	Date        *string  `json:"date"`
	Receipt     *string  `json:"receipt"`
	Notes       *string  `json:"notes"`
}

type ExpenseService struct {
	expenses   domain.ExpenseRepository
	categories domain.CategoryRepository
	now        func() time.Time
}

func NewExpenseService(expenses domain.ExpenseRepository, categories domain.CategoryRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses, categories: categories, now: time.Now}
}

func (s *ExpenseService) List(ctx context.Context, userID string, filter domain.ExpenseFilter) ([]domain.Expense, domain.Pagination, error) {
	if err := validateRange(filter.DateRange); err != nil {
		return nil, domain.Pagination{}, err
	}
	filter.Page = filter.Page.Normalize()

	expenses, total, err := s.expenses.List(ctx, userID, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return expenses, domain.NewPagination(total, filter.Page.Page, filter.Page.Limit), nil
}

func (s *ExpenseService) Get(ctx context.Context, userID string, expenseID uuid.UUID) (*domain.Expense, error) {
	return s.expenses.FindByID(ctx, userID, expenseID)
}

func (s *ExpenseService) Create(ctx context.Context, userID string, input CreateExpenseInput) (*domain.Expense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, financeErrors.ErrDescriptionRequired
	}
	amount, err := requiredAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	category, err := ownedCategory(ctx, s.categories, userID, input.CategoryID, domain.CategoryTypeExpense, financeErrors.ErrInvalidCategory)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date, err := parseOptionalDate(input.Date, now)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Amount:      amount,
		CategoryID:  category.ID,
		Category:    category.Ref(),
		Date:        date,
		Receipt:     strings.TrimSpace(input.Receipt),
		Notes:       strings.TrimSpace(input.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) Update(ctx context.Context, userID string, expenseID uuid.UUID, input UpdateExpenseInput) (*domain.Expense, error) {
	expense, err := s.expenses.FindByID(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, financeErrors.ErrDescriptionRequired
		}
		expense.Description = description
	}
	if input.Amount != nil {
		amount, err := requiredAmount(input.Amount)
		if err != nil {
			return nil, err
		}
		expense.Amount = amount
	}
	if input.CategoryID != nil {
		category, err := ownedCategory(ctx, s.categories, userID, *input.CategoryID, domain.CategoryTypeExpense, financeErrors.ErrInvalidCategory)
		if err != nil {
			return nil, err
		}
		expense.CategoryID = category.ID
		expense.Category = category.Ref()
	}
	if input.Date != nil {
		date, err := domain.ParseDate(*input.Date)
		if err != nil {
			return nil, err
		}
		expense.Date = date
	}
	if input.Receipt != nil {
		expense.Receipt = strings.TrimSpace(*input.Receipt)
	}
	if input.Notes != nil {
		expense.Notes = strings.TrimSpace(*input.Notes)
	}
	expense.UpdatedAt = s.now().UTC()

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID string, expenseID uuid.UUID) error {
	return s.expenses.Delete(ctx, userID, expenseID)
}

// requiredAmount rejects a missing or negative amount and rounds to cents.
func requiredAmount(amount *float64) (float64, error) {
	if amount == nil {
		return 0, financeErrors.ErrInvalidAmount
	}
	if *amount < 0 {
		return 0, financeErrors.ErrNegativeAmount
	}
	return roundMoney(*amount), nil
}

func validateRange(window domain.DateRange) error {
	if !window.Start.IsZero() && !window.End.IsZero() && !window.Start.Before(window.End) {
		return financeErrors.ErrInvalidDateRange
	}
	return nil
}
