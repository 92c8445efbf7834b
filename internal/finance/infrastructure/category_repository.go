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

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, user_id, name, icon, color, type, budget, created_at, updated_at`

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, category.ID, category.UserID, category.Name, category.Icon, category.Color,
		category.Type, category.Budget, category.CreatedAt.UTC(), category.UpdatedAt.UTC())
	if err != nil {
		if database.IsUniqueViolation(err) {
			return financeErrors.ErrCategoryExists
		}
		return fmt.Errorf("could not create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, userID string, categoryID uuid.UUID) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, categoryID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("could not find category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) FindByUser(ctx context.Context, userID, categoryType string) ([]domain.Category, error) {
	where := newWhere("user_id", userID)
	if categoryType != "" {
		where.add("type = %s", categoryType)
	}
	query := `SELECT ` + categoryColumns + ` FROM categories` + where.String() + ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan category: %w", err)
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `UPDATE categories
		SET name = $1, icon = $2, color = $3, budget = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7`
	result, err := r.db.ExecContext(ctx, query, category.Name, category.Icon, category.Color, category.Budget,
		category.UpdatedAt.UTC(), category.ID, category.UserID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return financeErrors.ErrCategoryExists
		}
		return fmt.Errorf("could not update category: %w", err)
	}
	return checkAffected(result, financeErrors.ErrCategoryNotFound)
}

func (r *CategoryRepository) Delete(ctx context.Context, userID string, categoryID uuid.UUID) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			safeRollback(ctx, tx)
		}
	}()

	var owned int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID).Scan(&owned)
	if err != nil {
		return fmt.Errorf("could not check category: %w", err)
	}
	if owned == 0 {
		return financeErrors.ErrCategoryNotFound
	}

	var references int
	err = tx.QueryRowContext(ctx, `SELECT
			(SELECT COUNT(*) FROM expenses WHERE category_id = $1) +
			(SELECT COUNT(*) FROM income WHERE source_id = $2) +
			(SELECT COUNT(*) FROM budgets WHERE category_id = $3)`,
		categoryID, categoryID, categoryID).Scan(&references)
	if err != nil {
		return fmt.Errorf("could not count category references: %w", err)
	}
	if references > 0 {
		return financeErrors.ErrCategoryInUse
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID); err != nil {
		return fmt.Errorf("could not delete category: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit category deletion: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category
	var budget sql.NullFloat64
	err := row.Scan(&category.ID, &category.UserID, &category.Name, &category.Icon, &category.Color, &category.Type,
		&budget, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if budget.Valid {
		category.Budget = &budget.Float64
	}
	category.CreatedAt = category.CreatedAt.UTC()
	category.UpdatedAt = category.UpdatedAt.UTC()
	return &category, nil
}
