package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/db/dbtest"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/FinanceTracker/internal/log"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/stretchr/testify/require"
)

const userHeader = "X-Test-User"

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

// fakeAuth trusts the user id sent in userHeader.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userHeader)
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}
		next.ServeHTTP(w, r.WithContext(user.ContextWithID(r.Context(), userID)))
	})
}

type utcLocations struct{}

func (utcLocations) Location(context.Context, string) (*time.Location, error) {
	return time.UTC, nil
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	owner   string
	other   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := dbtest.NewSQLite(t)
	owner, other := uuid.NewString(), uuid.NewString()
	dbtest.InsertUser(t, db, owner, "owner@example.com")
	dbtest.InsertUser(t, db, other, "other@example.com")

	categories := infrastructure.NewCategoryRepository(db)
	expenses := infrastructure.NewExpenseRepository(db)
	income := infrastructure.NewIncomeRepository(db)
	budgets := infrastructure.NewBudgetRepository(db)
	goals := infrastructure.NewGoalRepository(db)

	handlers := Handlers{
		Categories: NewCategoryHandler(application.NewCategoryService(categories), respondJSON, respondError),
		Expenses:   NewExpenseHandler(application.NewExpenseService(expenses, categories), respondJSON, respondError),
		Income:     NewIncomeHandler(application.NewIncomeService(income, categories), respondJSON, respondError),
		Budgets:    NewBudgetHandler(application.NewBudgetService(budgets, categories, expenses, utcLocations{}), respondJSON, respondError),
		Goals:      NewGoalHandler(application.NewGoalService(goals, log.Nop()), respondJSON, respondError),
		Reports: NewReportHandler(
			application.NewAnalyticsService(expenses, income, utcLocations{}, log.Nop()),
			application.NewReportService(expenses, income, log.Nop()),
			respondJSON, respondError,
		),
	}

	mux := http.NewServeMux()
	RegisterRoutes(mux, fakeAuth, handlers, respondError)
	return &testServer{t: t, handler: mux, owner: owner, other: other}
}

func (s *testServer) do(method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(userHeader, userID)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

// call performs the request and decodes the JSON body, asserting the status code.
func (s *testServer) call(method, path, userID string, body interface{}, wantStatus int) map[string]interface{} {
	s.t.Helper()
	w := s.do(method, path, userID, body)
	require.Equal(s.t, wantStatus, w.Code, w.Body.String())
	var response map[string]interface{}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (s *testServer) createCategory(userID, name, categoryType string) string {
	s.t.Helper()
	response := s.call(http.MethodPost, "/api/categories", userID, map[string]interface{}{
		"name": name,
		"type": categoryType,
	}, http.StatusCreated)
	return response["category"].(map[string]interface{})["id"].(string)
}
