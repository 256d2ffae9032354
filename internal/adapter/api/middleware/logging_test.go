package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggingRecordsRequestOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`[{"id":"loc_1"}]`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/events/combined?radius=25", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want the wrapped handler's status passed through", rec.Code)
	}
	if rec.Body.String() != `[{"id":"loc_1"}]` {
		t.Fatalf("body = %q, want the wrapped handler's body passed through", rec.Body.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["method"] != "GET" || entry["path"] != "/api/events/combined" {
		t.Errorf("logged method/path = %v/%v", entry["method"], entry["path"])
	}
	if entry["query"] != "radius=25" {
		t.Errorf("logged query = %v, want radius=25", entry["query"])
	}
	if got := entry["status"]; got != float64(http.StatusTeapot) {
		t.Errorf("logged status = %v, want %d", got, http.StatusTeapot)
	}
	if got := entry["response_bytes"]; got != float64(16) {
		t.Errorf("logged response_bytes = %v, want 16", got)
	}
}

func TestLoggingDefaultsToOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK")) // implicit 200, no WriteHeader call
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if got := entry["status"]; got != float64(http.StatusOK) {
		t.Errorf("logged status = %v, want 200 when WriteHeader is never called", got)
	}
}
