package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/log"
)

// whereBuilder numbers placeholders as clauses are added so optional filters stay portable
// between Postgres and SQLite.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func newWhere(userColumn, userID string) *whereBuilder {
	b := &whereBuilder{}
	b.add(userColumn+" = %s", userID)
	return b
}

func (b *whereBuilder) add(format string, value interface{}) {
	b.args = append(b.args, value)
	b.clauses = append(b.clauses, fmt.Sprintf(format, b.placeholder()))
}

func (b *whereBuilder) addRange(column string, window domain.DateRange) {
	if !window.Start.IsZero() {
		b.add(column+" >= %s", window.Start.UTC())
	}
	if !window.End.IsZero() {
		b.add(column+" < %s", window.End.UTC())
	}
}

func (b *whereBuilder) placeholder() string {
	return fmt.Sprintf("$%d", len(b.args))
}

// next appends a positional argument outside the WHERE clause and returns its placeholder.
func (b *whereBuilder) next(value interface{}) string {
	b.args = append(b.args, value)
	return b.placeholder()
}

func (b *whereBuilder) String() string {
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	utc := t.Time.UTC()
	return &utc
}

func checkAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func safeRollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		log.FromContext(ctx).Error().Err(err).Msg("Error during transaction rollback")
	}
}
