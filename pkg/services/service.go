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

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/netpolicy-demo/internal/httpclient"
	"github.com/caas-team/netpolicy-demo/internal/logger"
	"github.com/caas-team/netpolicy-demo/pkg/api"
	"github.com/caas-team/netpolicy-demo/pkg/config"
	"github.com/caas-team/netpolicy-demo/pkg/metrics"
	"github.com/caas-team/netpolicy-demo/pkg/tracing"
)

// Service is one of the independently deployable demo apps
type Service interface {
	// Name returns the name of the service
	Name() string
	// Description returns a short description of what the service demonstrates
	Description() string
	// Routes returns the routes served by the service
	Routes() []api.Route
	// GetMetricCollectors allows the service to provide prometheus metric collectors
	GetMetricCollectors() []prometheus.Collector
}

// Run serves the service until the context is canceled.
// Besides the routes of the service it serves /metrics and /openapi.
// Handlers find a traced http client in their request context.
func Run(ctx context.Context, cfg *config.Config, svc Service, version string) (err error) {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx).With("service", svc.Name())
	ctx = logger.IntoContext(ctx, log)
	ctx = httpclient.IntoContext(ctx, httpclient.New())

	tracer := tracing.New(cfg.Tracing, svc.Name(), version)
	if err = tracer.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if sErr := tracer.Shutdown(context.Background()); sErr != nil {
			err = errors.Join(err, sErr)
		}
	}()

	m := metrics.NewMetrics()
	if err = m.Register(svc.GetMetricCollectors()...); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	routes := svc.Routes()
	doc, err := api.OpenAPI(ctx, api.Info{Title: svc.Name(), Description: svc.Description(), Version: version}, routes)
	if err != nil {
		return fmt.Errorf("failed to create openapi document: %w", err)
	}
	routes = append(routes,
		api.Route{Path: "/openapi", Method: http.MethodGet, Handler: api.OpenAPIHandler(doc)},
		api.Route{Path: "/metrics", Method: "Handle", Handler: m.Handler().ServeHTTP},
	)

	a := api.New(cfg.Api)
	if err = a.RegisterRoutes(ctx, routes...); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	cErr := make(chan error, 1)
	go func() {
		cErr <- a.Run(ctx)
	}()

	log.Info("Running service", "addr", cfg.Api.ListeningAddress)
	select {
	case <-ctx.Done():
	case err = <-cErr:
		if ctx.Err() == nil {
			return err
		}
	}

	log.Info("Shutting down service")
	return a.Shutdown(context.Background())
}
