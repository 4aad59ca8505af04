// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("expected valid JSON output: %v (output: %s)", err, buf.String())
	}
	return logEntry
}

func TestHTTPMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatJSON, Output: &buf})

	var seenID string
	handler := NewHTTPMiddleware(logger).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/execute", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if seenID == "" {
		t.Fatal("expected request ID in handler context")
	}
	if got := w.Header().Get(RequestIDHeader); got != seenID {
		t.Errorf("expected response header %q, got %q", seenID, got)
	}

	logEntry := decodeLine(t, &buf)
	if logEntry["method"] != "POST" {
		t.Errorf("expected method POST, got: %v", logEntry["method"])
	}
	if logEntry["path"] != "/api/execute" {
		t.Errorf("expected path /api/execute, got: %v", logEntry["path"])
	}
	if logEntry["status"] != float64(http.StatusTeapot) {
		t.Errorf("expected status 418, got: %v", logEntry["status"])
	}
	if logEntry["bytes"] != float64(5) {
		t.Errorf("expected bytes 5, got: %v", logEntry["bytes"])
	}
	if logEntry[RequestIDKey] != seenID {
		t.Errorf("expected request_id %q, got: %v", seenID, logEntry[RequestIDKey])
	}
	if _, ok := logEntry[DurationKey]; !ok {
		t.Errorf("expected %s field", DurationKey)
	}
}

func TestHTTPMiddleware_EchoesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatJSON, Output: &buf})
	handler := NewHTTPMiddleware(logger).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "client-id-1" {
		t.Errorf("expected echoed request ID, got %q", got)
	}
	if logEntry := decodeLine(t, &buf); logEntry["status"] != float64(http.StatusOK) {
		t.Errorf("expected implicit status 200, got: %v", logEntry["status"])
	}
}

func TestHTTPMiddleware_ReplacesOversizedRequestID(t *testing.T) {
	logger := New(&Config{Level: "error", Format: FormatJSON, Output: &bytes.Buffer{}})
	handler := NewHTTPMiddleware(logger).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	long := strings.Repeat("x", maxRequestIDLen+1)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, long)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	got := w.Header().Get(RequestIDHeader)
	if got == "" || got == long {
		t.Errorf("expected a generated request ID, got %q", got)
	}
}

func TestHTTPMiddleware_ServerErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatJSON, Output: &buf})
	handler := NewHTTPMiddleware(logger).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if logEntry := decodeLine(t, &buf); logEntry["level"] != "ERROR" {
		t.Errorf("expected ERROR level, got: %v", logEntry["level"])
	}
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := RequestIDFromContext(req.Context()); id != "" {
		t.Errorf("expected empty request ID, got %q", id)
	}
}
