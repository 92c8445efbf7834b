package interfaces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sebuszqo/FinanceTracker/internal/log"
	"github.com/sebuszqo/FinanceTracker/internal/user"
)

type (
	RespondJSONFunc  func(w http.ResponseWriter, status int, payload interface{})
	RespondErrorFunc func(w http.ResponseWriter, status int, message string)
)

type responders struct {
	respondJSON  RespondJSONFunc
	respondError RespondErrorFunc
}

type pathIDKey string

// ValidatePathIDMiddleware parses the {id} path value as a UUID and stores it for the handler.
// A malformed id is answered exactly like a missing record.
func ValidatePathIDMiddleware(resource string, respondError RespondErrorFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parsed, err := uuid.Parse(r.PathValue("id"))
			if err != nil {
				log.FromContext(r.Context()).Debug().Str(log.FieldResource, resource).Msg("Malformed path id")
				respondError(w, http.StatusNotFound, fmt.Sprintf("%s not found", resource))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), pathIDKey("id"), parsed)))
		})
	}
}

func pathID(r *http.Request) uuid.UUID {
	id, _ := r.Context().Value(pathIDKey("id")).(uuid.UUID)
	return id
}

func (h responders) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return userID, ok
}

func (h responders) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// fail maps service errors onto responses: validation is 400, not-found is 404 and
// anything else is logged and answered with the generic message.
func (h responders) fail(w http.ResponseWriter, r *http.Request, err error, operation, message string) {
	switch {
	case financeErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case financeErrors.IsNotFoundError(err):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		userID, _ := user.IDFromContext(r.Context())
		log.FromContext(r.Context()).Error().
			Err(err).
			Str(log.FieldOperation, operation).
			Str(log.FieldUserID, userID).
			Str(log.FieldPath, r.URL.Path).
			Msg(message)
		h.respondError(w, http.StatusInternalServerError, message)
	}
}

func (h responders) success(w http.ResponseWriter, status int, message string, key string, value interface{}) {
	payload := map[string]interface{}{
		"status": "success",
	}
	if message != "" {
		payload["message"] = message
	}
	if key != "" {
		payload[key] = value
	}
	h.respondJSON(w, status, payload)
}

func resourceMessage(resource, verb string) string {
	return fmt.Sprintf("%s %s successfully", resource, verb)
}

func queryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
