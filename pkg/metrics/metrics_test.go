// netpolicy-demo
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_Register(t *testing.T) {
	m := NewMetrics()
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "netpolicy_test_gauge", Help: "test"})
	gauge.Set(42)

	require.NoError(t, m.Register(gauge))
	assert.Error(t, m.Register(gauge), "registering the same collector twice must fail")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "netpolicy_test_gauge 42")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestPrometheusMetrics_GetRegistry(t *testing.T) {
	m := NewMetrics()
	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
