package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type IncomeRepository struct {
	db *sql.DB
}

func NewIncomeRepository(db *sql.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

const incomeSelect = `SELECT i.id, i.user_id, i.description, i.amount, i.source_id, i.date, i.recurring, i.notes,
		i.created_at, i.updated_at, c.id, c.name, c.icon, c.color
	FROM income i
	LEFT JOIN categories c ON c.id = i.source_id`

func (r *IncomeRepository) Create(ctx context.Context, income *domain.Income) error {
	query := `INSERT INTO income (id, user_id, source_id, description, amount, date, recurring, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, income.ID, income.UserID, income.SourceID, income.Description, income.Amount,
		income.Date.UTC(), income.Recurring, income.Notes, income.CreatedAt.UTC(), income.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("could not create income: %w", err)
	}
	return nil
}

func (r *IncomeRepository) FindByID(ctx context.Context, userID string, incomeID uuid.UUID) (*domain.Income, error) {
	query := incomeSelect + ` WHERE i.id = $1 AND i.user_id = $2`
	income, err := scanIncome(r.db.QueryRowContext(ctx, query, incomeID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrIncomeNotFound
		}
		return nil, fmt.Errorf("could not find income: %w", err)
	}
	return income, nil
}

func (r *IncomeRepository) List(ctx context.Context, userID string, filter domain.IncomeFilter) ([]domain.Income, int, error) {
	where := newWhere("i.user_id", userID)
	where.addRange("i.date", filter.DateRange)
	if filter.SourceID != nil {
		where.add("i.source_id = %s", *filter.SourceID)
	}
	if filter.Recurring != nil {
		where.add("i.recurring = %s", *filter.Recurring)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM income i`+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("could not count income: %w", err)
	}

	page := filter.Page.Normalize()
	query := incomeSelect + where.String() + ` ORDER BY i.date DESC, i.created_at DESC LIMIT ` +
		where.next(page.Limit) + ` OFFSET ` + where.next(page.Offset())

	income, err := r.query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, err
	}
	return income, total, nil
}

func (r *IncomeRepository) FindInRange(ctx context.Context, userID string, window domain.DateRange) ([]domain.Income, error) {
	where := newWhere("i.user_id", userID)
	where.addRange("i.date", window)
	return r.query(ctx, incomeSelect+where.String()+` ORDER BY i.date ASC`, where.args...)
}

func (r *IncomeRepository) Update(ctx context.Context, income *domain.Income) error {
	query := `UPDATE income
		SET description = $1, amount = $2, source_id = $3, date = $4, recurring = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9`
	result, err := r.db.ExecContext(ctx, query, income.Description, income.Amount, income.SourceID, income.Date.UTC(),
		income.Recurring, income.Notes, income.UpdatedAt.UTC(), income.ID, income.UserID)
	if err != nil {
		return fmt.Errorf("could not update income: %w", err)
	}
	return checkAffected(result, financeErrors.ErrIncomeNotFound)
}

func (r *IncomeRepository) Delete(ctx context.Context, userID string, incomeID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM income WHERE id = $1 AND user_id = $2`, incomeID, userID)
	if err != nil {
		return fmt.Errorf("could not delete income: %w", err)
	}
	return checkAffected(result, financeErrors.ErrIncomeNotFound)
}

func (r *IncomeRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Income, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list income: %w", err)
	}
	defer rows.Close()

	income := []domain.Income{}
	for rows.Next() {
		entry, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan income: %w", err)
		}
		income = append(income, *entry)
	}
	return income, rows.Err()
}

func scanIncome(row rowScanner) (*domain.Income, error) {
	var income domain.Income
	var ref nullCategoryRef
	err := row.Scan(&income.ID, &income.UserID, &income.Description, &income.Amount, &income.SourceID, &income.Date,
		&income.Recurring, &income.Notes, &income.CreatedAt, &income.UpdatedAt,
		&ref.ID, &ref.Name, &ref.Icon, &ref.Color)
	if err != nil {
		return nil, err
	}
	income.Source = ref.toRef()
	income.Date = income.Date.UTC()
	income.CreatedAt = income.CreatedAt.UTC()
	income.UpdatedAt = income.UpdatedAt.UTC()
	return &income, nil
}
