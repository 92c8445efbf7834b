package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseSelect = `SELECT e.id, e.user_id, e.description, e.amount, e.category_id, e.date, e.receipt, e.notes,
		e.created_at, e.updated_at, c.id, c.name, c.icon, c.color
	FROM expenses e
	LEFT JOIN categories c ON c.id = e.category_id`

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `INSERT INTO expenses (id, user_id, category_id, description, amount, date, receipt, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, expense.ID, expense.UserID, expense.CategoryID, expense.Description,
		expense.Amount, expense.Date.UTC(), expense.Receipt, expense.Notes, expense.CreatedAt.UTC(), expense.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("could not create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, userID string, expenseID uuid.UUID) (*domain.Expense, error) {
	query := expenseSelect + ` WHERE e.id = $1 AND e.user_id = $2`
	expense, err := scanExpense(r.db.QueryRowContext(ctx, query, expenseID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("could not find expense: %w", err)
	}
	return expense, nil
}

func (r *ExpenseRepository) List(ctx context.Context, userID string, filter domain.ExpenseFilter) ([]domain.Expense, int, error) {
	where := newWhere("e.user_id", userID)
	where.addRange("e.date", filter.DateRange)
	if filter.CategoryID != nil {
		where.add("e.category_id = %s", *filter.CategoryID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses e`+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("could not count expenses: %w", err)
	}

	page := filter.Page.Normalize()
	query := expenseSelect + where.String() + ` ORDER BY e.date DESC, e.created_at DESC LIMIT ` +
		where.next(page.Limit) + ` OFFSET ` + where.next(page.Offset())

	expenses, err := r.query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *ExpenseRepository) FindInRange(ctx context.Context, userID string, window domain.DateRange) ([]domain.Expense, error) {
	where := newWhere("e.user_id", userID)
	where.addRange("e.date", window)
	return r.query(ctx, expenseSelect+where.String()+` ORDER BY e.date ASC`, where.args...)
}

func (r *ExpenseRepository) SumByCategory(ctx context.Context, userID string, categoryID uuid.UUID, window domain.DateRange) (float64, error) {
	where := newWhere("e.user_id", userID)
	where.add("e.category_id = %s", categoryID)
	where.addRange("e.date", window)

	var total decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, `SELECT SUM(e.amount) FROM expenses e`+where.String(), where.args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("could not sum expenses: %w", err)
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Decimal.Round(2).InexactFloat64(), nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `UPDATE expenses
		SET description = $1, amount = $2, category_id = $3, date = $4, receipt = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9`
	result, err := r.db.ExecContext(ctx, query, expense.Description, expense.Amount, expense.CategoryID, expense.Date.UTC(),
		expense.Receipt, expense.Notes, expense.UpdatedAt.UTC(), expense.ID, expense.UserID)
	if err != nil {
		return fmt.Errorf("could not update expense: %w", err)
	}
	return checkAffected(result, financeErrors.ErrExpenseNotFound)
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID string, expenseID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, expenseID, userID)
	if err != nil {
		return fmt.Errorf("could not delete expense: %w", err)
	}
	return checkAffected(result, financeErrors.ErrExpenseNotFound)
}

func (r *ExpenseRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	return expenses, rows.Err()
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var expense domain.Expense
	var ref nullCategoryRef
	err := row.Scan(&expense.ID, &expense.UserID, &expense.Description, &expense.Amount, &expense.CategoryID, &expense.Date,
		&expense.Receipt, &expense.Notes, &expense.CreatedAt, &expense.UpdatedAt,
		&ref.ID, &ref.Name, &ref.Icon, &ref.Color)
	if err != nil {
		return nil, err
	}
	expense.Category = ref.toRef()
	expense.Date = expense.Date.UTC()
	expense.CreatedAt = expense.CreatedAt.UTC()
	expense.UpdatedAt = expense.UpdatedAt.UTC()
	return &expense, nil
}

// nullCategoryRef scans the LEFT JOINed category columns.
type nullCategoryRef struct {
	ID    uuid.NullUUID
	Name  sql.NullString
	Icon  sql.NullString
	Color sql.NullString
}

func (n nullCategoryRef) toRef() *domain.CategoryRef {
	if !n.ID.Valid {
		return nil
	}
	return &domain.CategoryRef{ID: n.ID.UUID, Name: n.Name.String, Icon: n.Icon.String, Color: n.Color.String}
}
