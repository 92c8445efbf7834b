package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type CreateIncomeInput struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	SourceID    string   `json:"sourceId"`
	Date        string   `json:"date"`
	Recurring   bool     `json:"recurring"`
	Notes       string   `json:"notes"`
}

type UpdateIncomeInput struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	SourceID    *string  `json:"sourceId"`
	Date        *string  `json:"date"`
	Recurring   *bool    `json:"recurring"`
	Notes       *string  `json:"notes"`
}

type IncomeService struct {
	income     domain.IncomeRepository
	categories domain.CategoryRepository
	now        func() time.Time
}

func NewIncomeService(income domain.IncomeRepository, categories domain.CategoryRepository) *IncomeService {
	return &IncomeService{income: income, categories: categories, now: time.Now}
}

func (s *IncomeService) List(ctx context.Context, userID string, filter domain.IncomeFilter) ([]domain.Income, domain.Pagination, error) {
	if err := validateRange(filter.DateRange); err != nil {
		return nil, domain.Pagination{}, err
	}
	filter.Page = filter.Page.Normalize()

	income, total, err := s.income.List(ctx, userID, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return income, domain.NewPagination(total, filter.Page.Page, filter.Page.Limit), nil
}

func (s *IncomeService) Get(ctx context.Context, userID string, incomeID uuid.UUID) (*domain.Income, error) {
	return s.income.FindByID(ctx, userID, incomeID)
}

func (s *IncomeService) Create(ctx context.Context, userID string, input CreateIncomeInput) (*domain.Income, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, financeErrors.ErrDescriptionRequired
	}
	amount, err := requiredAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	source, err := ownedCategory(ctx, s.categories, userID, input.SourceID, domain.CategoryTypeIncome, financeErrors.ErrInvalidIncomeSource)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date, err := parseOptionalDate(input.Date, now)
	if err != nil {
		return nil, err
	}

	income := &domain.Income{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Amount:      amount,
		SourceID:    source.ID,
		Source:      source.Ref(),
		Date:        date,
		Recurring:   input.Recurring,
		Notes:       strings.TrimSpace(input.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.income.Create(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *IncomeService) Update(ctx context.Context, userID string, incomeID uuid.UUID, input UpdateIncomeInput) (*domain.Income, error) {
	income, err := s.income.FindByID(ctx, userID, incomeID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, financeErrors.ErrDescriptionRequired
		}
		income.Description = description
	}
	if input.Amount != nil {
		amount, err := requiredAmount(input.Amount)
		if err != nil {
			return nil, err
		}
		income.Amount = amount
	}
	if input.SourceID != nil {
		source, err := ownedCategory(ctx, s.categories, userID, *input.SourceID, domain.CategoryTypeIncome, financeErrors.ErrInvalidIncomeSource)
		if err != nil {
			return nil, err
		}
		income.SourceID = source.ID
		income.Source = source.Ref()
	}
	if input.Date != nil {
		date, err := domain.ParseDate(*input.Date)
		if err != nil {
			return nil, err
		}
		income.Date = date
	}
	if input.Recurring != nil {
		income.Recurring = *input.Recurring
	}
	if input.Notes != nil {
		income.Notes = strings.TrimSpace(*input.Notes)
	}
	income.UpdatedAt = s.now().UTC()

	if err := s.income.Update(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *IncomeService) Delete(ctx context.Context, userID string, incomeID uuid.UUID) error {
	return s.income.Delete(ctx, userID, incomeID)
}
