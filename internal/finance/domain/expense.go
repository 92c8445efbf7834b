package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID          uuid.UUID    `json:"id"`
	UserID      string       `json:"-"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	CategoryID  uuid.UUID    `json:"categoryId"`
	Category    *CategoryRef `json:"category,omitempty"`
	Date        time.Time    `json:"date"`
	Receipt     string       `json:"receipt"`
	Notes       string       `json:"notes"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type ExpenseFilter struct {
	DateRange
	CategoryID *uuid.UUID
	Page       PageRequest
}

//go:generate mockgen -source=expense.go -destination=mock_expense_repository.go -package=domain

type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, userID string, expenseID uuid.UUID) (*Expense, error)
	// List returns one page of expenses, newest first, and the total matching the filter.
	List(ctx context.Context, userID string, filter ExpenseFilter) ([]Expense, int, error)
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, userID string, expenseID uuid.UUID) error
	// FindInRange returns every expense in the window with its category resolved when possible.
	FindInRange(ctx context.Context, userID string, window DateRange) ([]Expense, error)
	SumByCategory(ctx context.Context, userID string, categoryID uuid.UUID, window DateRange) (float64, error)
}
