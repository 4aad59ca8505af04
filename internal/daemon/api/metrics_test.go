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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/textchef/internal/daemon/api"
)

func TestMetricsEndpoint(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})
	router.SetMetricsHandler(promhttp.Handler())

	w, result := execute(t, router, `{"operation":"md5","input":"metrics"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, result.Success)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mw := httptest.NewRecorder()
	router.ServeHTTP(mw, req)

	require.Equal(t, http.StatusOK, mw.Code)
	assert.NotEmpty(t, mw.Header().Get("Content-Type"))

	body := mw.Body.String()
	assert.True(t, strings.Contains(body, `textchef_operation_executions_total{operation="md5",status="success"}`),
		"expected md5 execution counter in metrics output")
	assert.Contains(t, body, "textchef_operation_duration_seconds")
}

func TestMetricsEndpointWithoutHandler(t *testing.T) {
	router := newRouter(t, api.RouterConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
