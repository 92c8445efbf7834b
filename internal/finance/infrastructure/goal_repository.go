package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, user_id, name, target_amount, current_amount, icon, description, target_date, category,
		created_at, updated_at`

func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, goal.ID, goal.UserID, goal.Name, goal.Target, goal.Current, goal.Icon,
		goal.Description, goal.TargetDate.UTC(), goal.Category, goal.CreatedAt.UTC(), goal.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("could not create goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) FindByID(ctx context.Context, userID string, goalID uuid.UUID) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`
	goal, err := scanGoal(r.db.QueryRowContext(ctx, query, goalID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrGoalNotFound
		}
		return nil, fmt.Errorf("could not find goal: %w", err)
	}
	return goal, nil
}

func (r *GoalRepository) FindByUser(ctx context.Context, userID, category string) ([]domain.Goal, error) {
	where := newWhere("user_id", userID)
	if category != "" {
		where.add("category = %s", category)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+goalColumns+` FROM goals`+where.String()+` ORDER BY target_date ASC`, where.args...)
	if err != nil {
		return nil, fmt.Errorf("could not list goals: %w", err)
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan goal: %w", err)
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	query := `UPDATE goals
		SET name = $1, target_amount = $2, icon = $3, description = $4, target_date = $5, category = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9`
	result, err := r.db.ExecContext(ctx, query, goal.Name, goal.Target, goal.Icon, goal.Description, goal.TargetDate.UTC(),
		goal.Category, goal.UpdatedAt.UTC(), goal.ID, goal.UserID)
	if err != nil {
		return fmt.Errorf("could not update goal: %w", err)
	}
	return checkAffected(result, financeErrors.ErrGoalNotFound)
}

func (r *GoalRepository) AddToCurrent(ctx context.Context, userID string, goalID uuid.UUID, amount float64, updatedAt time.Time) error {
	query := `UPDATE goals
		SET current_amount = ROUND(CASE
				WHEN current_amount + $1 > target_amount THEN target_amount
				ELSE current_amount + $2
			END, 2),
			updated_at = $3
		WHERE id = $4 AND user_id = $5`
	result, err := r.db.ExecContext(ctx, query, amount, amount, updatedAt.UTC(), goalID, userID)
	if err != nil {
		return fmt.Errorf("could not fund goal: %w", err)
	}
	return checkAffected(result, financeErrors.ErrGoalNotFound)
}

func (r *GoalRepository) Delete(ctx context.Context, userID string, goalID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("could not delete goal: %w", err)
	}
	return checkAffected(result, financeErrors.ErrGoalNotFound)
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var goal domain.Goal
	err := row.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.Target, &goal.Current, &goal.Icon, &goal.Description,
		&goal.TargetDate, &goal.Category, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	goal.TargetDate = goal.TargetDate.UTC()
	goal.CreatedAt = goal.CreatedAt.UTC()
	goal.UpdatedAt = goal.UpdatedAt.UTC()
	return &goal, nil
}
