package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	database "github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

const budgetSelect = `SELECT b.id, b.user_id, b.category_id, b.amount, b.period, b.start_date, b.end_date,
		b.created_at, b.updated_at, c.id, c.name, c.icon, c.color
	FROM budgets b
	LEFT JOIN categories c ON c.id = b.category_id`

func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := `INSERT INTO budgets (id, user_id, category_id, amount, period, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, budget.ID, budget.UserID, budget.CategoryID, budget.Amount, budget.Period,
		budget.StartDate.UTC(), nullableTime(budget.EndDate), budget.CreatedAt.UTC(), budget.UpdatedAt.UTC())
	if err != nil {
		if database.IsUniqueViolation(err) {
			return financeErrors.ErrBudgetExists
		}
		return fmt.Errorf("could not create budget: %w", err)
	}
	return nil
}

func (r *BudgetRepository) FindByID(ctx context.Context, userID string, budgetID uuid.UUID) (*domain.Budget, error) {
	query := budgetSelect + ` WHERE b.id = $1 AND b.user_id = $2`
	budget, err := scanBudget(r.db.QueryRowContext(ctx, query, budgetID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("could not find budget: %w", err)
	}
	return budget, nil
}

func (r *BudgetRepository) FindByUser(ctx context.Context, userID, period string) ([]domain.Budget, error) {
	where := newWhere("b.user_id", userID)
	if period != "" {
		where.add("b.period = %s", period)
	}

	rows, err := r.db.QueryContext(ctx, budgetSelect+where.String()+` ORDER BY b.created_at ASC`, where.args...)
	if err != nil {
		return nil, fmt.Errorf("could not list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan budget: %w", err)
		}
		budgets = append(budgets, *budget)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	query := `UPDATE budgets
		SET amount = $1, start_date = $2, end_date = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6`
	result, err := r.db.ExecContext(ctx, query, budget.Amount, budget.StartDate.UTC(), nullableTime(budget.EndDate),
		budget.UpdatedAt.UTC(), budget.ID, budget.UserID)
	if err != nil {
		return fmt.Errorf("could not update budget: %w", err)
	}
	return checkAffected(result, financeErrors.ErrBudgetNotFound)
}

func (r *BudgetRepository) Delete(ctx context.Context, userID string, budgetID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return fmt.Errorf("could not delete budget: %w", err)
	}
	return checkAffected(result, financeErrors.ErrBudgetNotFound)
}

func scanBudget(row rowScanner) (*domain.Budget, error) {
	var budget domain.Budget
	var endDate sql.NullTime
	var ref nullCategoryRef
	err := row.Scan(&budget.ID, &budget.UserID, &budget.CategoryID, &budget.Amount, &budget.Period, &budget.StartDate,
		&endDate, &budget.CreatedAt, &budget.UpdatedAt, &ref.ID, &ref.Name, &ref.Icon, &ref.Color)
	if err != nil {
		return nil, err
	}
	budget.Category = ref.toRef()
	budget.EndDate = timePtr(endDate)
	budget.StartDate = budget.StartDate.UTC()
	budget.CreatedAt = budget.CreatedAt.UTC()
	budget.UpdatedAt = budget.UpdatedAt.UTC()
	return &budget, nil
}
