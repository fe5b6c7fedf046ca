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

package probe

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	status    *prometheus.GaugeVec
	count     *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

func newMetrics() metrics {
	return metrics{
		status: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "netpolicy_probe_status",
				Help: "Specifies if the last probe of the target succeeded.",
			},
			[]string{"kind", "target"},
		),
		count: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netpolicy_probe_count",
				Help: "Total number of probes performed on the target and if they were successful.",
			},
			[]string{"kind", "target", "succeeded"},
		),
		histogram: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "netpolicy_probe_duration_seconds",
				Help: "Histogram of probe durations in seconds.",
			},
			[]string{"kind", "target"},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.status,
		m.count,
		m.histogram,
	}
}

// Set records the outcome of a single probe
func (m *metrics) Set(res Result) {
	status, succeeded := 0.0, "false"
	if res.Succeeded {
		status, succeeded = 1.0, "true"
	}
	kind := res.Kind.String()
	m.status.WithLabelValues(kind, res.Target).Set(status)
	m.count.WithLabelValues(kind, res.Target, succeeded).Inc()
	m.histogram.WithLabelValues(kind, res.Target).Observe(res.Duration.Seconds())
}
