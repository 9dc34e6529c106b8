package http_action

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestNewHTTPRequestAction(t *testing.T) {
	action, err := NewHTTPRequestAction(map[string]any{
		"id":     "a1",
		"method": "post",
		"url":    "http://example.com/hook",
		"body":   `{"fired": true}`,
		"headers": map[string]any{
			"Content-Type": "application/json",
			"ignored":      42,
		},
		"timeout_ms": float64(5000),
	}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "a1", action.GetID())
	assert.Equal(t, "http_request", action.GetType())
	assert.Equal(t, http.MethodPost, action.Method, "method is upper-cased")
	assert.Equal(t, 5*time.Second, action.Timeout)
	assert.Equal(t, map[string]string{"Content-Type": "application/json"}, action.Headers)
}

func TestNewHTTPRequestActionDefaults(t *testing.T) {
	action, err := NewHTTPRequestAction(map[string]any{
		"id":  "a1",
		"url": "http://example.com",
	}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, action.Method)
	assert.Equal(t, defaultTimeout, action.Timeout)
}

func TestGetConfigRoundTrip(t *testing.T) {
	action, err := NewHTTPRequestAction(map[string]any{
		"id":     "a1",
		"method": "POST",
		"url":    "http://example.com/hook",
		"body":   `{"fired": true}`,
		"headers": map[string]any{
			"Authorization": "Bearer token",
			"Content-Type":  "application/json",
		},
		"timeout_ms": 5000,
	}, testLogger())
	require.NoError(t, err)

	rebuilt, err := NewHTTPRequestAction(action.GetConfig(), testLogger())
	require.NoError(t, err)

	assert.Equal(t, action.ID, rebuilt.ID)
	assert.Equal(t, action.Method, rebuilt.Method)
	assert.Equal(t, action.URL, rebuilt.URL)
	assert.Equal(t, action.Body, rebuilt.Body)
	assert.Equal(t, action.Timeout, rebuilt.Timeout)
	assert.Equal(t, "Bearer token", rebuilt.Headers["Authorization"],
		"headers survive a persist and restore cycle")
	assert.Equal(t, action.Headers, rebuilt.Headers)
}

func TestNewHTTPRequestActionRequiresURL(t *testing.T) {
	_, err := NewHTTPRequestAction(map[string]any{"id": "a1"}, testLogger())
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	var (
		gotMethod string
		gotBody   string
		gotHeader string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Get("X-Flint")

		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	action, err := NewHTTPRequestAction(map[string]any{
		"id":      "a1",
		"method":  "POST",
		"url":     server.URL,
		"body":    "payload",
		"headers": map[string]any{"X-Flint": "yes"},
	}, testLogger())
	require.NoError(t, err)

	require.NoError(t, action.Execute(context.Background()))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "payload", gotBody)
	assert.Equal(t, "yes", gotHeader)
}

func TestExecuteNon2xxStatusFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	action, err := NewHTTPRequestAction(map[string]any{
		"id":  "a1",
		"url": server.URL,
	}, testLogger())
	require.NoError(t, err)

	err = action.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestExecuteConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close()

	action, err := NewHTTPRequestAction(map[string]any{
		"id":  "a1",
		"url": server.URL,
	}, testLogger())
	require.NoError(t, err)

	assert.Error(t, action.Execute(context.Background()))
}

func TestFactory(t *testing.T) {
	factory := NewHTTPRequestActionFactory()

	assert.Equal(t, "http_request", factory.ID())
	assert.NotEmpty(t, factory.Name())
	assert.NotEmpty(t, factory.Description())
	assert.NotNil(t, factory.Schema())

	action, err := factory.Create(map[string]any{"id": "a1", "url": "http://example.com"}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "a1", action.GetID())

	_, err = factory.Create(nil, testLogger())
	assert.Error(t, err)
}
