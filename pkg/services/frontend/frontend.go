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

// Package frontend implements the frontend app calling the backend app over internal routing.
package frontend

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/netpolicy-demo/internal/logger"
	"github.com/caas-team/netpolicy-demo/pkg/api"
	"github.com/caas-team/netpolicy-demo/pkg/config"
	"github.com/caas-team/netpolicy-demo/pkg/probe"
	"github.com/caas-team/netpolicy-demo/pkg/render"
	"github.com/caas-team/netpolicy-demo/pkg/services"
	"github.com/caas-team/netpolicy-demo/pkg/services/backend"
)

// Name of the frontend service
const Name = "frontend-app"

var _ services.Service = (*Frontend)(nil)

// Frontend serves a landing page and probes the backend on request
type Frontend struct {
	cfg    config.BackendConfig
	prober probe.Prober
}

// New creates a new frontend calling the configured backend with the given prober
func New(cfg config.BackendConfig, p probe.Prober) *Frontend {
	return &Frontend{cfg: cfg, prober: p}
}

func (f *Frontend) Name() string {
	return Name
}

func (f *Frontend) Description() string {
	return "Frontend app calling the backend app via container-to-container networking"
}

func (f *Frontend) Routes() []api.Route {
	return []api.Route{
		{
			Path: "/", Method: http.MethodGet, Handler: f.handleLanding,
			Doc: &api.Doc{Summary: "Landing page of the frontend app"},
		},
		{
			Path: "/call-backend", Method: http.MethodGet, Handler: f.handleCallBackend,
			Doc: &api.Doc{
				Summary:  "Calls the backend app over internal routing and shows its response",
				Statuses: []int{http.StatusOK, http.StatusInternalServerError},
			},
		},
	}
}

func (f *Frontend) GetMetricCollectors() []prometheus.Collector {
	return f.prober.GetMetricCollectors()
}

func (f *Frontend) handleLanding(w http.ResponseWriter, r *http.Request) {
	services.WriteHTML(w, r, http.StatusOK, render.FrontendLanding())
}

func (f *Frontend) handleCallBackend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	res := f.prober.Probe(ctx, probe.HTTP(f.cfg.URL, f.cfg.Timeout))
	if !res.Succeeded {
		log.Warn("Backend is not reachable", "url", f.cfg.URL, "error", res.Error)
		services.WriteHTML(w, r, http.StatusInternalServerError, render.BackendCall(res, render.BackendData{}))
		return
	}

	var payload backend.Payload
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		log.Warn("Backend returned an invalid response", "url", f.cfg.URL, "error", err)
		res = res.WithError(fmt.Errorf("invalid backend response: %w", err))
		services.WriteHTML(w, r, http.StatusInternalServerError, render.BackendCall(res, render.BackendData{}))
		return
	}

	log.Debug("Backend responded", "url", f.cfg.URL, "source", payload.Source)
	services.WriteHTML(w, r, http.StatusOK, render.BackendCall(res, render.BackendData{
		Message: payload.Message,
		Source:  payload.Source,
	}))
}
