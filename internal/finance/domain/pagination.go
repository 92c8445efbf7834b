package domain

import (
	"strings"
	"time"

	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

// PageRequest is a validated page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

const dateLayout = "2006-01-02"

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates. A plain date is stored as
// UTC midnight, and every calendar computation (months, budget periods, reports) works in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, financeErrors.ErrInvalidDate
	}
	return t, nil
}

// CalendarDay returns the user's current calendar day, read in loc, as UTC midnight.
func CalendarDay(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a half-open [Start, End) window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
