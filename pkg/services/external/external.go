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

// Package external implements the external client app. It checks whether egress
// traffic to a public endpoint and public dns resolution are permitted.
package external

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/netpolicy-demo/internal/logger"
	"github.com/caas-team/netpolicy-demo/pkg/api"
	"github.com/caas-team/netpolicy-demo/pkg/config"
	"github.com/caas-team/netpolicy-demo/pkg/probe"
	"github.com/caas-team/netpolicy-demo/pkg/render"
	"github.com/caas-team/netpolicy-demo/pkg/services"
)

// Name of the external client service
const Name = "external-client"

var _ services.Service = (*Client)(nil)

// Client serves a landing page and probes the public endpoint on request.
// Blocked traffic is an expected outcome, so every result page is served with 200.
type Client struct {
	cfg    config.ExternalConfig
	prober probe.Prober
}

// New creates a new external client with the given prober
func New(cfg config.ExternalConfig, p probe.Prober) *Client {
	return &Client{cfg: cfg, prober: p}
}

func (c *Client) Name() string {
	return Name
}

func (c *Client) Description() string {
	return "External client checking egress to the internet and public dns resolution"
}

func (c *Client) Routes() []api.Route {
	return []api.Route{
		{
			Path: "/", Method: http.MethodGet, Handler: c.handleLanding,
			Doc: &api.Doc{Summary: "Landing page of the external client"},
		},
		{
			Path: "/test-external", Method: http.MethodGet, Handler: c.handleExternal,
			Doc: &api.Doc{Summary: "Calls the public endpoint and shows the outcome"},
		},
		{
			Path: "/test-dns", Method: http.MethodGet, Handler: c.handleDNS,
			Doc: &api.Doc{Summary: "Resolves the public hostname and shows the outcome"},
		},
	}
}

func (c *Client) GetMetricCollectors() []prometheus.Collector {
	return c.prober.GetMetricCollectors()
}

func (c *Client) handleLanding(w http.ResponseWriter, r *http.Request) {
	services.WriteHTML(w, r, http.StatusOK, render.ExternalLanding())
}

func (c *Client) handleExternal(w http.ResponseWriter, r *http.Request) {
	res := c.prober.Probe(r.Context(), probe.HTTP(c.cfg.URL, c.cfg.Timeout))
	if !res.Succeeded {
		logger.FromContext(r.Context()).Info("External endpoint is not reachable", "url", c.cfg.URL, "error", res.Error)
	}
	services.WriteHTML(w, r, http.StatusOK, render.ExternalCall(res))
}

func (c *Client) handleDNS(w http.ResponseWriter, r *http.Request) {
	res := c.prober.Probe(r.Context(), probe.DNS(c.cfg.DNSHost, c.cfg.DNSTimeout))
	if !res.Succeeded {
		logger.FromContext(r.Context()).Info("Host could not be resolved", "host", c.cfg.DNSHost, "error", res.Error)
	}
	services.WriteHTML(w, r, http.StatusOK, render.DNS(res))
}
