package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockUserService struct {
	user        *User
	registerErr error
	getErr      error
}

func (m *MockUserService) Register(_ context.Context, input RegisterInput) (*User, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return &User{ID: "user-1", FirstName: input.FirstName, LastName: input.LastName, Email: input.Email}, nil
}

func (m *MockUserService) GetUserByID(_ context.Context, _ string) (*User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *MockUserService) GetUserByEmail(_ context.Context, _ string) (*User, error) {
	return m.user, m.getErr
}

func (m *MockUserService) Location(_ context.Context, _ string) (*time.Location, error) {
	return time.UTC, nil
}

type stubIssuer struct {
	err error
}

func (s stubIssuer) IssueAccessToken(userID string) (string, error) {
	return "token-for-" + userID, s.err
}

func decodeBody(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestHandleRegister_Success(t *testing.T) {
	handler := NewHandler(&MockUserService{}, stubIssuer{})
	body := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleRegister(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	response := decodeBody(t, res)
	assert.Equal(t, "token-for-user-1", response["token"])
	user := response["user"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", user["email"])
	assert.NotContains(t, user, "PasswordHash")
}

func TestHandleRegister_Duplicate(t *testing.T) {
	handler := NewHandler(&MockUserService{registerErr: ErrEmailAlreadyExists}, stubIssuer{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"a@b.com"}`))
	w := httptest.NewRecorder()

	handler.HandleRegister(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "User already exists", decodeBody(t, res)["message"])
}

func TestHandleRegister_InvalidBody(t *testing.T) {
	handler := NewHandler(&MockUserService{}, stubIssuer{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{`))
	w := httptest.NewRecorder()

	handler.HandleRegister(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRegister_InternalError(t *testing.T) {
	handler := NewHandler(&MockUserService{registerErr: errors.New("db down")}, stubIssuer{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.HandleRegister(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Could not register user", decodeBody(t, res)["message"])
}

func TestHandleGetMe(t *testing.T) {
	service := &MockUserService{user: &User{ID: "user-1", Email: "jane@example.com", Timezone: "UTC", Currency: "USD"}}
	handler := NewHandler(service, stubIssuer{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(ContextWithID(req.Context(), "user-1"))
	w := httptest.NewRecorder()

	handler.HandleGetMe(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	user := decodeBody(t, res)["user"].(map[string]interface{})
	assert.Equal(t, "user-1", user["id"])
	assert.Equal(t, "USD", user["currency"])
}

func TestHandleGetMe_Unauthorized(t *testing.T) {
	handler := NewHandler(&MockUserService{}, stubIssuer{})
	w := httptest.NewRecorder()

	handler.HandleGetMe(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
