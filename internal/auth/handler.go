package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/user"
)

type Handler struct {
	authService Service
}

func NewHandler(authService Service) *Handler {
	return &Handler{
		authService: authService,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	existingUser, token, err := h.authService.Login(r.Context(), req.Email, req.Password, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respondError(w, http.StatusBadRequest, ErrInvalidCredentials.Error())
		case errors.Is(err, ErrTwoFactorRequired):
			respondJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"status":            "error",
				"message":           ErrTwoFactorRequired.Error(),
				"code":              http.StatusUnauthorized,
				"twoFactorRequired": true,
			})
		case errors.Is(err, ErrInvalid2FACode):
			respondError(w, http.StatusUnauthorized, ErrInvalid2FACode.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"token":  token,
		"user":   existingUser,
	})
}

func (h *Handler) HandleSetupTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otpURL, secret, err := h.authService.SetupTwoFactor(r.Context(), userID)
	if err != nil {
		h.respondTwoFactorError(w, err, "Could not set up two-factor authentication")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "Two-factor authentication initiated. Please verify to enable.",
		"otpauthUrl": otpURL,
		"secret":     secret,
	})
}

func (h *Handler) HandleEnableTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, code, ok := decodeCodeRequest(w, r)
	if !ok {
		return
	}

	if err := h.authService.EnableTwoFactor(r.Context(), userID, code); err != nil {
		h.respondTwoFactorError(w, err, "Could not enable two-factor authentication")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Two-factor authentication enabled successfully",
	})
}

func (h *Handler) HandleDisableTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, code, ok := decodeCodeRequest(w, r)
	if !ok {
		return
	}

	if err := h.authService.DisableTwoFactor(r.Context(), userID, code); err != nil {
		h.respondTwoFactorError(w, err, "Could not disable two-factor authentication")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Two-factor authentication disabled successfully",
	})
}

func decodeCodeRequest(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", "", false
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return "", "", false
	}
	return userID, req.Code, true
}

func (h *Handler) respondTwoFactorError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalid2FACode):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUser2FAAlreadyEnabled):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrUser2FANotEnabled), errors.Is(err, ErrUser2FANotSetUp):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	default:
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
