package interfaces

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sebuszqo/FinanceTracker/internal/log"
)

type IncomeServiceInterface interface {
	List(ctx context.Context, userID string, filter domain.IncomeFilter) ([]domain.Income, domain.Pagination, error)
	Get(ctx context.Context, userID string, incomeID uuid.UUID) (*domain.Income, error)
	Create(ctx context.Context, userID string, input application.CreateIncomeInput) (*domain.Income, error)
	Update(ctx context.Context, userID string, incomeID uuid.UUID, input application.UpdateIncomeInput) (*domain.Income, error)
	Delete(ctx context.Context, userID string, incomeID uuid.UUID) error
}

type IncomeHandler struct {
	responders
	service IncomeServiceInterface
}

func NewIncomeHandler(service IncomeServiceInterface, respondJSON RespondJSONFunc, respondError RespondErrorFunc) *IncomeHandler {
	return &IncomeHandler{
		responders: responders{respondJSON: respondJSON, respondError: respondError},
		service:    service,
	}
}

func (h *IncomeHandler) GetIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	filter, err := incomeFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	income, pagination, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		h.fail(w, r, err, log.OpList, "Failed to retrieve income")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"income":     income,
		"pagination": pagination,
	})
}

func incomeFilter(r *http.Request) (domain.IncomeFilter, error) {
	var filter domain.IncomeFilter
	var err error
	if filter.DateRange, err = parseDateRange(r); err != nil {
		return filter, err
	}
	if filter.SourceID, err = parseOptionalUUID(r, "source", financeErrors.ErrInvalidIncomeSource); err != nil {
		return filter, err
	}
	if filter.Recurring, err = parseOptionalBool(r, "recurring", financeErrors.ErrInvalidRecurringFilter); err != nil {
		return filter, err
	}
	if filter.Page, err = parsePage(r); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *IncomeHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input application.CreateIncomeInput
	if !h.decode(w, r, &input) {
		return
	}

	income, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		h.fail(w, r, err, log.OpCreate, "Failed to create income")
		return
	}
	h.success(w, http.StatusCreated, resourceMessage("Income", "created"), "income", income)
}

func (h *IncomeHandler) GetIncomeByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	income, err := h.service.Get(r.Context(), userID, pathID(r))
	if err != nil {
		h.fail(w, r, err, log.OpRead, "Failed to retrieve income")
		return
	}
	h.success(w, http.StatusOK, "", "income", income)
}

func (h *IncomeHandler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input application.UpdateIncomeInput
	if !h.decode(w, r, &input) {
		return
	}

	income, err := h.service.Update(r.Context(), userID, pathID(r), input)
	if err != nil {
		h.fail(w, r, err, log.OpUpdate, "Failed to update income")
		return
	}
	h.success(w, http.StatusOK, resourceMessage("Income", "updated"), "income", income)
}

func (h *IncomeHandler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, pathID(r)); err != nil {
		h.fail(w, r, err, log.OpDelete, "Failed to delete income")
		return
	}
	h.success(w, http.StatusOK, resourceMessage("Income", "deleted"), "", nil)
}
