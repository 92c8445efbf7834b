package interfaces

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/log"
)

type BudgetServiceInterface interface {
	List(ctx context.Context, userID, period string) ([]domain.Budget, error)
	Get(ctx context.Context, userID string, budgetID uuid.UUID) (*domain.Budget, error)
	Create(ctx context.Context, userID string, input application.CreateBudgetInput) (*domain.Budget, error)
	Update(ctx context.Context, userID string, budgetID uuid.UUID, input application.UpdateBudgetInput) (*domain.Budget, error)
	Delete(ctx context.Context, userID string, budgetID uuid.UUID) error
	Progress(ctx context.Context, userID string, budgetID uuid.UUID) (*domain.BudgetProgress, error)
}

type BudgetHandler struct {
	responders
	service BudgetServiceInterface
}

func NewBudgetHandler(service BudgetServiceInterface, respondJSON RespondJSONFunc, respondError RespondErrorFunc) *BudgetHandler {
	return &BudgetHandler{
		responders: responders{respondJSON: respondJSON, respondError: respondError},
		service:    service,
	}
}

func (h *BudgetHandler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	budgets, err := h.service.List(r.Context(), userID, queryValue(r, "period"))
	if err != nil {
		h.fail(w, r, err, log.OpList, "Failed to retrieve budgets")
		return
	}
	h.success(w, http.StatusOK, "", "budgets", budgets)
}

func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input application.CreateBudgetInput
	if !h.decode(w, r, &input) {
		return
	}

	budget, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		h.fail(w, r, err, log.OpCreate, "Failed to create budget")
		return
	}
	h.success(w, http.StatusCreated, resourceMessage("Budget", "created"), "budget", budget)
}

func (h *BudgetHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	budget, err := h.service.Get(r.Context(), userID, pathID(r))
	if err != nil {
		h.fail(w, r, err, log.OpRead, "Failed to retrieve budget")
		return
	}
	h.success(w, http.StatusOK, "", "budget", budget)
}

func (h *BudgetHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input application.UpdateBudgetInput
	if !h.decode(w, r, &input) {
		return
	}

	budget, err := h.service.Update(r.Context(), userID, pathID(r), input)
	if err != nil {
		h.fail(w, r, err, log.OpUpdate, "Failed to update budget")
		return
	}
	h.success(w, http.StatusOK, resourceMessage("Budget", "updated"), "budget", budget)
}

func (h *BudgetHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, pathID(r)); err != nil {
		h.fail(w, r, err, log.OpDelete, "Failed to delete budget")
		return
	}
	h.success(w, http.StatusOK, resourceMessage("Budget", "deleted"), "", nil)
}

func (h *BudgetHandler) GetBudgetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.Progress(r.Context(), userID, pathID(r))
	if err != nil {
		h.fail(w, r, err, log.OpRead, "Failed to compute budget progress")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"budget":      progress.Budget,
		"spent":       progress.Spent,
		"remaining":   progress.Remaining,
		"percentage":  progress.Percentage,
		"periodStart": progress.PeriodStart,
		"periodEnd":   progress.PeriodEnd,
	})
}
