package log

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestMiddleware_LogsCompletedRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: "json", Output: &buf})

	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Debug().Msg("inside handler")
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/expenses?page=2", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	entry := lastLine(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "req-123", entry[FieldRequestID])
	assert.Equal(t, "/api/expenses", entry[FieldPath])
	assert.Equal(t, "page=2", entry[FieldQuery])
	assert.Equal(t, float64(http.StatusNotFound), entry[FieldStatusCode])
	assert.Contains(t, buf.String(), "inside handler")
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Output: &buf})

	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/goals", nil))

	requestID := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, requestID)

	entry := lastLine(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, requestID, entry[FieldRequestID])
}

func TestNew_FallsBackToInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "loud", Output: &buf})

	logger.Debug().Msg("hidden")
	logger.Info().Msg("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf}).WithComponent(ComponentStorage)

	logger.Info().Msg("migrated")

	assert.Equal(t, ComponentStorage, logger.Component())
	assert.Equal(t, ComponentStorage, lastLine(t, &buf)[FieldComponent])
}
