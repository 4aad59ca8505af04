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

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tombee/textchef/internal/daemon/api"
	"github.com/tombee/textchef/internal/daemon/httputil"
	"github.com/tombee/textchef/internal/operation"
	"github.com/tombee/textchef/internal/tracing"
)

func newRouter(t *testing.T, cfg api.RouterConfig) *api.Router {
	t.Helper()
	registry, err := operation.NewBuiltinRegistry(nil)
	require.NoError(t, err)
	if cfg.Version == "" {
		cfg.Version = "test"
	}
	return api.NewRouter(cfg, registry)
}

func execute(t *testing.T, router http.Handler, body string) (*httptest.ResponseRecorder, operation.Result) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/execute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var result operation.Result
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	}
	return w, result
}

func TestRouter_Root(t *testing.T) {
	router := newRouter(t, api.RouterConfig{Version: "1.2.3"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"textchefd","version":"1.2.3"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnknownPathIsNotFound(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Health(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Greater(t, body["operations"], float64(0))
}

func TestRouter_ListOperations(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/operations", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var ops []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ops))
	require.NotEmpty(t, ops)
	assert.Equal(t, "base64_encode", ops[0]["name"])
	assert.Equal(t, "Encoding", ops[0]["category"])
	assert.Equal(t, []any{}, ops[0]["parameters"])

	var caesar map[string]any
	for _, op := range ops {
		if op["name"] == "caesar_cipher" {
			caesar = op
		}
	}
	require.NotNil(t, caesar)
	params := caesar["parameters"].([]any)
	require.Len(t, params, 1)
	shift := params[0].(map[string]any)
	assert.Equal(t, "shift", shift["name"])
	assert.Equal(t, "number", shift["param_type"])
	assert.Equal(t, false, shift["required"])
	assert.Equal(t, "13", shift["default_value"])
}

func TestRouter_Execute(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})

	tests := []struct {
		name    string
		body    string
		success bool
		output  string
		errText string
	}{
		{
			name:    "success",
			body:    `{"operation":"base64_encode","input":"Hello, World!"}`,
			success: true,
			output:  "SGVsbG8sIFdvcmxkIQ==",
		},
		{
			name:    "string parameter",
			body:    `{"operation":"caesar_cipher","input":"Hello","parameters":{"shift":"3"}}`,
			success: true,
			output:  "Khoor",
		},
		{
			name:    "numeric parameter",
			body:    `{"operation":"caesar_cipher","input":"Khoor","parameters":{"shift":-3}}`,
			success: true,
			output:  "Hello",
		},
		{
			name:    "unparsable parameter falls back",
			body:    `{"operation":"caesar_cipher","input":"Hello","parameters":{"shift":"abc"}}`,
			success: true,
			output:  "Uryyb",
		},
		{
			name:    "null parameters",
			body:    `{"operation":"rot13","input":"abc","parameters":null}`,
			success: true,
			output:  "nop",
		},
		{
			name:    "empty output",
			body:    `{"operation":"to_uppercase","input":""}`,
			success: true,
			output:  "",
		},
		{
			name:    "operation failure",
			body:    `{"operation":"hex_decode","input":"xyz"}`,
			errText: "hex_decode",
		},
		{
			name:    "unknown operation",
			body:    `{"operation":"frobnicate","input":"x"}`,
			errText: "Unknown operation: frobnicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, result := execute(t, router, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.success, result.Success)
			if tt.success {
				require.NotNil(t, result.Output)
				assert.Equal(t, tt.output, *result.Output)
				assert.Nil(t, result.Error)
			} else {
				require.NotNil(t, result.Error)
				assert.Contains(t, *result.Error, tt.errText)
				assert.Nil(t, result.Output)
			}
		})
	}
}

func TestRouter_ExecuteBadRequests(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"operation":`},
		{name: "missing operation", body: `{"input":"x"}`},
		{name: "missing input", body: `{"operation":"md5"}`},
		{name: "nested parameter", body: `{"operation":"md5","input":"x","parameters":{"a":{"b":1}}}`},
		{name: "wrong input type", body: `{"operation":"md5","input":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := execute(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRouter_ExecuteBodyTooLarge(t *testing.T) {
	router := newRouter(t, api.RouterConfig{MaxRequestBytes: 64})

	body := `{"operation":"md5","input":"` + strings.Repeat("a", 128) + `"}`
	w, _ := execute(t, router, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRouter_ExecuteMethodNotAllowed(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/execute", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})
	router.SetRateLimit(1, 1)

	body := `{"operation":"md5","input":"x"}`
	w, _ := execute(t, router, body)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = execute(t, router, body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// Discovery is not limited.
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, httptest.NewRequest(http.MethodGet, "/api/operations", nil))
	assert.Equal(t, http.StatusOK, lw.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})

	req := httptest.NewRequest(http.MethodOptions, "/api/execute", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRouter_RequestIDEcho(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRouter_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("static content"), 0644))

	router := newRouter(t, api.RouterConfig{StaticDir: dir})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/hello.txt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "static content", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/missing.txt", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_StaticDisabled(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/hello.txt", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Version(t *testing.T) {
	router := newRouter(t, api.RouterConfig{Version: "1.0.0", Commit: "abc123", BuildDate: "2025-01-01"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/version", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"version":"1.0.0","commit":"abc123","build_date":"2025-01-01","go_version":"`+runtime.Version()+`"}`,
		w.Body.String())
}

func TestRouter_ExecutionSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider, err := tracing.NewProvider(tracing.Config{ServiceName: "test"}, sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	router := newRouter(t, api.RouterConfig{})
	router.SetTracer(provider.Tracer())

	w, result := execute(t, router, `{"operation":"sha256","input":"Hello, World!"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, result.Success)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "execute sha256", spans[0].Name)
}
