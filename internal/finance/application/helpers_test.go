package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

const testUserID = "user-1"

var fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fixedLocation struct {
	loc *time.Location
	err error
}

func (f fixedLocation) Location(_ context.Context, _ string) (*time.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.loc, nil
}

func ptr[T any](v T) *T { return &v }

func newCategory(categoryType, name string) *domain.Category {
	return &domain.Category{
		ID:     uuid.New(),
		UserID: testUserID,
		Name:   name,
		Icon:   domain.DefaultCategoryIcon,
		Color:  "#ff0000",
		Type:   categoryType,
	}
}

func expenseOn(category *domain.Category, amount float64, date time.Time) domain.Expense {
	expense := domain.Expense{
		ID:          uuid.New(),
		UserID:      testUserID,
		Description: "expense",
		Amount:      amount,
		Date:        date,
	}
	if category != nil {
		expense.CategoryID = category.ID
		expense.Category = category.Ref()
	}
	return expense
}

func incomeOn(amount float64, date time.Time) domain.Income {
	return domain.Income{
		ID:          uuid.New(),
		UserID:      testUserID,
		Description: "income",
		Amount:      amount,
		Date:        date,
	}
}
