package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	CategoryTypeExpense = "expense"
	CategoryTypeIncome  = "income"

	DefaultCategoryIcon  = "📦"
	DefaultCategoryColor = "#8884d8"

	// OtherCategoryName labels report rows whose category could not be resolved.
	OtherCategoryName = "Other"
)

func IsValidCategoryType(categoryType string) bool {
	return categoryType == CategoryTypeExpense || categoryType == CategoryTypeIncome
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Type      string    `json:"type"`
	Budget    *float64  `json:"budget,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryRef is the embedded view of a category on expenses, income and budgets.
type CategoryRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Icon  string    `json:"icon"`
	Color string    `json:"color"`
}

func (c *Category) Ref() *CategoryRef {
	return &CategoryRef{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
}

//go:generate mockgen -source=category.go -destination=mock_category_repository.go -package=domain

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, userID string, categoryID uuid.UUID) (*Category, error)
	FindByUser(ctx context.Context, userID, categoryType string) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	// Delete refuses categories still referenced by expenses, income or budgets.
	Delete(ctx context.Context, userID string, categoryID uuid.UUID) error
}
