package interfaces

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

// parseDateRange reads startDate and endDate. A plain endDate date includes that whole day.
func parseDateRange(r *http.Request) (domain.DateRange, error) {
	var window domain.DateRange
	if raw := queryValue(r, "startDate"); raw != "" {
		start, err := domain.ParseDate(raw)
		if err != nil {
			return window, err
		}
		window.Start = start
	}
	if raw := queryValue(r, "endDate"); raw != "" {
		end, err := domain.ParseDate(raw)
		if err != nil {
			return window, err
		}
		if !strings.Contains(raw, "T") {
			end = end.Add(24 * time.Hour)
		}
		window.End = end
	}
	return window, nil
}

func parsePage(r *http.Request) (domain.PageRequest, error) {
	var page domain.PageRequest
	for key, dst := range map[string]*int{"page": &page.Page, "limit": &page.Limit} {
		raw := queryValue(r, key)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return page, financeErrors.ErrInvalidPagination
		}
		*dst = value
	}
	return page.Normalize(), nil
}

func parseOptionalUUID(r *http.Request, key string, invalidErr error) (*uuid.UUID, error) {
	raw := queryValue(r, key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, invalidErr
	}
	return &id, nil
}

func parseOptionalBool(r *http.Request, key string, invalidErr error) (*bool, error) {
	raw := queryValue(r, key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidErr
	}
	return &value, nil
}
