package interfaces

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/log"
)

type CategoryServiceInterface interface {
	List(ctx context.Context, userID, categoryType string) ([]domain.Category, error)
	Get(ctx context.Context, userID string, categoryID uuid.UUID) (*domain.Category, error)
	Create(ctx context.Context, userID string, input application.CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, userID string, categoryID uuid.UUID, input application.UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, userID string, categoryID uuid.UUID) error
}

type CategoryHandler struct {
	responders
	service CategoryServiceInterface
}

func NewCategoryHandler(service CategoryServiceInterface, respondJSON RespondJSONFunc, respondError RespondErrorFunc) *CategoryHandler {
	return &CategoryHandler{
		responders: responders{respondJSON: respondJSON, respondError: respondError},
		service:    service,
	}
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	categories, err := h.service.List(r.Context(), userID, queryValue(r, "type"))
	if err != nil {
		h.fail(w, r, err, log.OpList, "Failed to retrieve categories")
		return
	}
	h.success(w, http.StatusOK, "", "categories", categories)
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input application.CreateCategoryInput
	if !h.decode(w, r, &input) {
		return
	}

	category, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		h.fail(w, r, err, log.OpCreate, "Failed to create category")
		return
	}
	h.success(w, http.StatusCreated, resourceMessage("Category", "created"), "category", category)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	category, err := h.service.Get(r.Context(), userID, pathID(r))
	if err != nil {
		h.fail(w, r, err, log.OpRead, "Failed to retrieve category")
		return
	}
	h.success(w, http.StatusOK, "", "category", category)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input application.UpdateCategoryInput
	if !h.decode(w, r, &input) {
		return
	}

	category, err := h.service.Update(r.Context(), userID, pathID(r), input)
	if err != nil {
		h.fail(w, r, err, log.OpUpdate, "Failed to update category")
		return
	}
	h.success(w, http.StatusOK, resourceMessage("Category", "updated"), "category", category)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, pathID(r)); err != nil {
		h.fail(w, r, err, log.OpDelete, "Failed to delete category")
		return
	}
	h.success(w, http.StatusOK, resourceMessage("Category", "deleted"), "", nil)
}
