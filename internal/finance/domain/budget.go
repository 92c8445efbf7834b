package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	BudgetPeriodWeekly  = "weekly"
	BudgetPeriodMonthly = "monthly"
	BudgetPeriodYearly  = "yearly"
)

func IsValidBudgetPeriod(period string) bool {
	switch period {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

type Budget struct {
	ID         uuid.UUID    `json:"id"`
	UserID     string       `json:"-"`
	CategoryID uuid.UUID    `json:"categoryId"`
	Category   *CategoryRef `json:"category,omitempty"`
	Amount     float64      `json:"budget"`
	Period     string       `json:"period"`
	StartDate  time.Time    `json:"startDate"`
	EndDate    *time.Time   `json:"endDate,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// PeriodWindow returns the calendar window of the budget period containing the user's
// current day. Weeks start on Monday.
func PeriodWindow(period string, now time.Time, loc *time.Location) DateRange {
	day := CalendarDay(now, loc)

	switch period {
	case BudgetPeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return DateRange{Start: start, End: start.AddDate(0, 0, 7)}
	case BudgetPeriodYearly:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: start, End: start.AddDate(1, 0, 0)}
	default:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: start, End: start.AddDate(0, 1, 0)}
	}
}

type BudgetProgress struct {
	Budget      *Budget   `json:"budget"`
	Spent       float64   `json:"spent"`
	Remaining   float64   `json:"remaining"`
	Percentage  float64   `json:"percentage"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
}

//go:generate mockgen -source=budget.go -destination=mock_budget_repository.go -package=domain

type BudgetRepository interface {
	Create(ctx context.Context, budget *Budget) error
	FindByID(ctx context.Context, userID string, budgetID uuid.UUID) (*Budget, error)
	FindByUser(ctx context.Context, userID, period string) ([]Budget, error)
	Update(ctx context.Context, budget *Budget) error
	Delete(ctx context.Context, userID string, budgetID uuid.UUID) error
}
