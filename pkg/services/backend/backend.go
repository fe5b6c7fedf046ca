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

// Package backend implements the passive backend app. It only answers requests and
// never initiates any outbound traffic.
package backend

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/netpolicy-demo/pkg/api"
	"github.com/caas-team/netpolicy-demo/pkg/render"
	"github.com/caas-team/netpolicy-demo/pkg/services"
)

const (
	// Name of the backend service
	Name = "backend-app"

	// DefaultMessage is the message returned by the data endpoint
	DefaultMessage = "Hello from Backend!"
	// DefaultSource is the source returned by the data endpoint
	DefaultSource = "backend-app via C2C networking"

	// TimestampFormat is the ISO-8601 layout of Payload.Timestamp
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"
)

var _ services.Service = (*Backend)(nil)

// Payload is the body of the data endpoint
type Payload struct {
	Message   string `json:"message"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// Backend serves a landing page and the data endpoint
type Backend struct {
	now func() time.Time
	// requests counts the served data requests
	requests prometheus.Counter
}

// Option configures the backend
type Option func(*Backend)

// WithClock sets the clock used for the payload timestamp
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

// New creates a new backend service
func New(opts ...Option) *Backend {
	b := &Backend{
		now: time.Now,
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "netpolicy_backend_data_requests_total",
			Help: "Number of requests served by the backend data endpoint",
		}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) Name() string {
	return Name
}

func (b *Backend) Description() string {
	return "Backend app answering container-to-container requests"
}

func (b *Backend) Routes() []api.Route {
	return []api.Route{
		{
			Path: "/", Method: http.MethodGet, Handler: b.handleLanding,
			Doc: &api.Doc{Summary: "Landing page of the backend app"},
		},
		{
			Path: "/api/data", Method: http.MethodGet, Handler: b.handleData,
			Doc: &api.Doc{
				Summary:     "Returns a fixed message together with the current time",
				ContentType: api.ContentTypeJSON,
				Schema:      Payload{},
			},
		},
	}
}

func (b *Backend) GetMetricCollectors() []prometheus.Collector {
	return []prometheus.Collector{b.requests}
}

// Payload returns the data endpoint body for the current time
func (b *Backend) Payload() Payload {
	return Payload{
		Message:   DefaultMessage,
		Source:    DefaultSource,
		Timestamp: b.now().UTC().Format(TimestampFormat),
	}
}

func (b *Backend) handleLanding(w http.ResponseWriter, r *http.Request) {
	services.WriteHTML(w, r, http.StatusOK, render.BackendLanding())
}

func (b *Backend) handleData(w http.ResponseWriter, r *http.Request) {
	b.requests.Inc()
	services.WriteJSON(w, r, http.StatusOK, b.Payload())
}
