package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type CreateCategoryInput struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Icon   string   `json:"icon"`
	Color  string   `json:"color"`
	Budget *float64 `json:"budget"`
}

// UpdateCategoryInput changes only the fields that are set. The type of a category is fixed.
type UpdateCategoryInput struct {
	Name   *string  `json:"name"`
	Icon   *string  `json:"icon"`
	Color  *string  `json:"color"`
	Budget *float64 `json:"budget"`
}

type CategoryService struct {
	repo domain.CategoryRepository
	now  func() time.Time
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, now: time.Now}
}

func (s *CategoryService) List(ctx context.Context, userID, categoryType string) ([]domain.Category, error) {
	if categoryType != "" && !domain.IsValidCategoryType(categoryType) {
		return nil, financeErrors.ErrInvalidCategoryType
	}
	return s.repo.FindByUser(ctx, userID, categoryType)
}

func (s *CategoryService) Get(ctx context.Context, userID string, categoryID uuid.UUID) (*domain.Category, error) {
	return s.repo.FindByID(ctx, userID, categoryID)
}

func (s *CategoryService) Create(ctx context.Context, userID string, input CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, financeErrors.ErrNameRequired
	}
	if !domain.IsValidCategoryType(input.Type) {
		return nil, financeErrors.ErrInvalidCategoryType
	}

	now := s.now().UTC()
	category := &domain.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Icon:      valueOr(input.Icon, domain.DefaultCategoryIcon),
		Color:     valueOr(input.Color, domain.DefaultCategoryColor),
		Type:      input.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := setCategoryBudget(category, input.Budget); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID string, categoryID uuid.UUID, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, financeErrors.ErrNameRequired
		}
		category.Name = name
	}
	if input.Icon != nil {
		category.Icon = valueOr(*input.Icon, domain.DefaultCategoryIcon)
	}
	if input.Color != nil {
		category.Color = valueOr(*input.Color, domain.DefaultCategoryColor)
	}
	if input.Budget != nil {
		if err := setCategoryBudget(category, input.Budget); err != nil {
			return nil, err
		}
	}
	category.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID string, categoryID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, categoryID)
}

// setCategoryBudget keeps a budget on expense categories only.
func setCategoryBudget(category *domain.Category, budget *float64) error {
	if budget == nil || category.Type != domain.CategoryTypeExpense {
		category.Budget = nil
		return nil
	}
	if *budget < 0 {
		return financeErrors.ErrNegativeAmount
	}
	rounded := roundMoney(*budget)
	category.Budget = &rounded
	return nil
}

// ownedCategory resolves rawID to a category of wantType owned by userID. Anything else,
// including a malformed id or another user's category, is reported as invalidErr.
func ownedCategory(ctx context.Context, repo domain.CategoryRepository, userID, rawID, wantType string, invalidErr error) (*domain.Category, error) {
	categoryID, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, invalidErr
	}
	category, err := repo.FindByID(ctx, userID, categoryID)
	if err != nil {
		if financeErrors.IsNotFoundError(err) {
			return nil, invalidErr
		}
		return nil, err
	}
	if category.Type != wantType {
		return nil, invalidErr
	}
	return category, nil
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

// parseOptionalDate returns fallback for an empty value.
func parseOptionalDate(value string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return domain.ParseDate(value)
}
