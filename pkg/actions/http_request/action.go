// Package http_action provides an action that performs an HTTP request
// when its trigger fires.
package http_action

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

type HTTPRequestAction struct {
	ID      string
	Method  string
	URL     string
	Headers map[string]string
	Body    string
	Timeout time.Duration
	logger  *slog.Logger
}

func NewHTTPRequestAction(config map[string]any, logger *slog.Logger) (*HTTPRequestAction, error) {
	id, _ := config["id"].(string)
	method, _ := config["method"].(string)
	url, _ := config["url"].(string)
	body, _ := config["body"].(string)

	if url == "" {
		return nil, fmt.Errorf("http_request action requires a url")
	}

	if method == "" {
		method = http.MethodGet
	}

	headers := make(map[string]string)

	switch headersConfig := config["headers"].(type) {
	case map[string]any:
		for k, v := range headersConfig {
			if strVal, ok := v.(string); ok {
				headers[k] = strVal
			}
		}
	case map[string]string:
		for k, v := range headersConfig {
			headers[k] = v
		}
	}

	timeout := defaultTimeout
	if timeoutMs := timeoutMillis(config["timeout_ms"]); timeoutMs > 0 {
		timeout = time.Duration(timeoutMs) * time.Millisecond
	}

	return &HTTPRequestAction{
		ID:      id,
		Method:  strings.ToUpper(method),
		URL:     url,
		Headers: headers,
		Body:    body,
		Timeout: timeout,
		logger:  logger.With("module", "http_request_action", "action_id", id),
	}, nil
}

// timeoutMillis tolerates the numeric types a timeout_ms value can
// arrive as: float64 from decoded JSON, int variants from in-process
// configuration.
func timeoutMillis(value any) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

func (a *HTTPRequestAction) GetID() string   { return a.ID }
func (a *HTTPRequestAction) GetType() string { return "http_request" }

func (a *HTTPRequestAction) GetConfig() map[string]any {
	headers := make(map[string]any, len(a.Headers))
	for k, v := range a.Headers {
		headers[k] = v
	}

	return map[string]any{
		"id":         a.ID,
		"method":     a.Method,
		"url":        a.URL,
		"headers":    headers,
		"body":       a.Body,
		"timeout_ms": float64(a.Timeout.Milliseconds()),
	}
}

func (a *HTTPRequestAction) Execute(ctx context.Context) error {
	a.logger.Info("Executing http request action", "method", a.Method, "url", a.URL)

	reqCtx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	var bodyReader io.Reader
	if a.Body != "" {
		bodyReader = strings.NewReader(a.Body)
	}

	req, err := http.NewRequestWithContext(reqCtx, a.Method, a.URL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	for key, value := range a.Headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http request returned status %d", resp.StatusCode)
	}

	return nil
}
