package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/user"
)

type Repository interface {
	SaveTwoFactorSecret(ctx context.Context, userID, secret string) error
	EnableTwoFactor(ctx context.Context, userID string) error
	DisableTwoFactor(ctx context.Context, userID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

// SaveTwoFactorSecret stores a pending secret; it only takes effect once EnableTwoFactor runs.
func (r *repository) SaveTwoFactorSecret(ctx context.Context, userID, secret string) error {
	query := `
		UPDATE users
		SET two_factor_secret = $1, updated_at = $2
		WHERE id = $3 AND two_factor_enabled = $4
	`
	return r.exec(ctx, "save two-factor secret", query, secret, time.Now().UTC(), userID, false)
}

func (r *repository) EnableTwoFactor(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET two_factor_enabled = $1, updated_at = $2
		WHERE id = $3 AND two_factor_secret <> ''
	`
	return r.exec(ctx, "enable two-factor", query, true, time.Now().UTC(), userID)
}

func (r *repository) DisableTwoFactor(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET two_factor_enabled = $1, two_factor_secret = '', updated_at = $2
		WHERE id = $3
	`
	return r.exec(ctx, "disable two-factor", query, false, time.Now().UTC(), userID)
}

func (r *repository) exec(ctx context.Context, action, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("could not %s: %w", action, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not %s: %w", action, err)
	}
	if affected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
