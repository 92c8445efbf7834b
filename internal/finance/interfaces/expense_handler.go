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

type ExpenseServiceInterface interface {
	List(ctx context.Context, userID string, filter domain.ExpenseFilter) ([]domain.Expense, domain.Pagination, error)
	Get(ctx context.Context, userID string, expenseID uuid.UUID) (*domain.Expense, error)
	Create(ctx context.Context, userID string, input application.CreateExpenseInput) (*domain.Expense, error)
	Update(ctx context.Context, userID string, expenseID uuid.UUID, input application.UpdateExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, userID string, expenseID uuid.UUID) error
}

type ExpenseHandler struct {
	responders
	service ExpenseServiceInterface
}

func NewExpenseHandler(service ExpenseServiceInterface, respondJSON RespondJSONFunc, respondError RespondErrorFunc) *ExpenseHandler {
	return &ExpenseHandler{
		responders: responders{respondJSON: respondJSON, respondError: respondError},
		service:    service,
	}
}

func (h *ExpenseHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	filter, err := expenseFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, pagination, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		h.fail(w, r, err, log.OpList, "Failed to retrieve expenses")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"expenses":   expenses,
		"pagination": pagination,
	})
}

func expenseFilter(r *http.Request) (domain.ExpenseFilter, error) {
	var filter domain.ExpenseFilter
	var err error
	if filter.DateRange, err = parseDateRange(r); err != nil {
		return filter, err
	}
	if filter.CategoryID, err = parseOptionalUUID(r, "category", financeErrors.ErrInvalidCategory); err != nil {
		return filter, err
	}
	if filter.Page, err = parsePage(r); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input application.CreateExpenseInput
	if !h.decode(w, r, &input) {
		return
	}

	expense, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		h.fail(w, r, err, log.OpCreate, "Failed to create expense")
		return
	}
	h.success(w, http.StatusCreated, resourceMessage("Expense", "created"), "expense", expense)
}

func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	expense, err := h.service.Get(r.Context(), userID, pathID(r))
	if err != nil {
		h.fail(w, r, err, log.OpRead, "Failed to retrieve expense")
		return
	}
	h.success(w, http.StatusOK, "", "expense", expense)
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input application.UpdateExpenseInput
	if !h.decode(w, r, &input) {
		return
	}

	expense, err := h.service.Update(r.Context(), userID, pathID(r), input)
	if err != nil {
		h.fail(w, r, err, log.OpUpdate, "Failed to update expense")
		return
	}
	h.success(w, http.StatusOK, resourceMessage("Expense", "updated"), "expense", expense)
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, pathID(r)); err != nil {
		h.fail(w, r, err, log.OpDelete, "Failed to delete expense")
		return
	}
	h.success(w, http.StatusOK, resourceMessage("Expense", "deleted"), "", nil)
}
