package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/log"
)

// TokenIssuer issues an access token for a freshly registered user.
type TokenIssuer interface {
	IssueAccessToken(userID string) (string, error)
}

type Handler struct {
	userService Service
	tokens      TokenIssuer
}

func NewHandler(userService Service, tokens TokenIssuer) *Handler {
	return &Handler{
		userService: userService,
		tokens:      tokens,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		if IsRegistrationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not register user")
		return
	}

	token, err := h.tokens.IssueAccessToken(user.ID)
	if err != nil {
		log.FromContext(r.Context()).Error().Err(err).Str(log.FieldUserID, user.ID).Msg("Could not issue token after registration")
		respondError(w, http.StatusInternalServerError, "Could not register user")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"token":  token,
		"user":   user,
	})
}

func (h *Handler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := IDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		log.FromContext(r.Context()).Error().Err(err).Str(log.FieldUserID, userID).Msg("Could not load user profile")
		respondError(w, http.StatusInternalServerError, "Could not retrieve user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"user":   user,
	})
}
