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

type GoalServiceInterface interface {
	List(ctx context.Context, userID, category string) ([]domain.Goal, error)
	Get(ctx context.Context, userID string, goalID uuid.UUID) (*domain.Goal, error)
	Create(ctx context.Context, userID string, input application.CreateGoalInput) (*domain.Goal, error)
	Update(ctx context.Context, userID string, goalID uuid.UUID, input application.UpdateGoalInput) (*domain.Goal, error)
	Delete(ctx context.Context, userID string, goalID uuid.UUID) error
	Fund(ctx context.Context, userID string, goalID uuid.UUID, amount float64) (*domain.Goal, int, error)
}

type GoalHandler struct {
	responders
	service GoalServiceInterface
}

func NewGoalHandler(service GoalServiceInterface, respondJSON RespondJSONFunc, respondError RespondErrorFunc) *GoalHandler {
	return &GoalHandler{
		responders: responders{respondJSON: respondJSON, respondError: respondError},
		service:    service,
	}
}

func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	goals, err := h.service.List(r.Context(), userID, queryValue(r, "category"))
	if err != nil {
		h.fail(w, r, err, log.OpList, "Failed to retrieve goals")
		return
	}
	h.success(w, http.StatusOK, "", "goals", goals)
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input application.CreateGoalInput
	if !h.decode(w, r, &input) {
		return
	}

	goal, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		h.fail(w, r, err, log.OpCreate, "Failed to create goal")
		return
	}
	h.success(w, http.StatusCreated, resourceMessage("Goal", "created"), "goal", goal)
}

func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	goal, err := h.service.Get(r.Context(), userID, pathID(r))
	if err != nil {
		h.fail(w, r, err, log.OpRead, "Failed to retrieve goal")
		return
	}
	h.success(w, http.StatusOK, "", "goal", goal)
}

func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input application.UpdateGoalInput
	if !h.decode(w, r, &input) {
		return
	}

	goal, err := h.service.Update(r.Context(), userID, pathID(r), input)
	if err != nil {
		h.fail(w, r, err, log.OpUpdate, "Failed to update goal")
		return
	}
	h.success(w, http.StatusOK, resourceMessage("Goal", "updated"), "goal", goal)
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, pathID(r)); err != nil {
		h.fail(w, r, err, log.OpDelete, "Failed to delete goal")
		return
	}
	h.success(w, http.StatusOK, resourceMessage("Goal", "deleted"), "", nil)
}

func (h *GoalHandler) FundGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req struct {
		Amount *float64 `json:"amount"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.Amount == nil {
		h.respondError(w, http.StatusBadRequest, financeErrors.ErrInvalidAmount.Error())
		return
	}

	goal, progress, err := h.service.Fund(r.Context(), userID, pathID(r), *req.Amount)
	if err != nil {
		h.fail(w, r, err, log.OpFund, "Failed to fund goal")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"message":  "Goal funded successfully",
		"goal":     goal,
		"progress": progress,
	})
}
