package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Income references its source, a category of type income.
type Income struct {
	ID          uuid.UUID    `json:"id"`
	UserID      string       `json:"-"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	SourceID    uuid.UUID    `json:"sourceId"`
	Source      *CategoryRef `json:"source,omitempty"`
	Date        time.Time    `json:"date"`
	Recurring   bool         `json:"recurring"`
	Notes       string       `json:"notes"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type IncomeFilter struct {
	DateRange
	SourceID  *uuid.UUID
	Recurring *bool
	Page      PageRequest
}

//go:generate mockgen -source=income.go -destination=mock_income_repository.go -package=domain

type IncomeRepository interface {
	Create(ctx context.Context, income *Income) error
	FindByID(ctx context.Context, userID string, incomeID uuid.UUID) (*Income, error)
	List(ctx context.Context, userID string, filter IncomeFilter) ([]Income, int, error)
	Update(ctx context.Context, income *Income) error
	Delete(ctx context.Context, userID string, incomeID uuid.UUID) error
	FindInRange(ctx context.Context, userID string, window DateRange) ([]Income, error)
}
