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

package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/caas-team/netpolicy-demo/internal/logger"
)

var _ Tracer = (*tracer)(nil)

// Tracer manages the global OpenTelemetry tracer provider of a service
type Tracer interface {
	// Initialize sets the global tracer provider exporting with the configured exporter
	Initialize(ctx context.Context) error
	// Shutdown flushes pending spans and stops the exporter
	Shutdown(ctx context.Context) error
}

type tracer struct {
	config  Config
	service string
	version string
	tp      *sdktrace.TracerProvider
}

// New creates a new tracer for the given service
func New(cfg Config, service, version string) Tracer {
	return &tracer{
		config:  cfg,
		service: service,
		version: version,
	}
}

const (
	// batchTimeout is the maximum time the exporter will wait for a batch to be ready
	batchTimeout = 5 * time.Second
	// maxQueueSize is the maximum number of spans that can be queued before they are dropped
	maxQueueSize = 1000
	// maxBatchSize is the maximum number of spans that can be exported in a single batch
	maxBatchSize = 100
)

func (t *tracer) Initialize(ctx context.Context) error {
	log := logger.FromContext(ctx)
	res, err := resource.New(ctx,
		resource.WithHost(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(t.service),
			semconv.ServiceVersion(t.version),
		),
	)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create resource", "error", err)
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := t.config.Exporter.Create(ctx, &t.config)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create exporter", "error", err)
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter,
			sdktrace.WithBatchTimeout(batchTimeout),
			sdktrace.WithMaxQueueSize(maxQueueSize),
			sdktrace.WithMaxExportBatchSize(maxBatchSize),
		)))
	}

	t.tp = sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(t.tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	log.DebugContext(ctx, "Tracing initialized with new provider", "exporter", t.config.Exporter)
	return nil
}

func (t *tracer) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if t.tp != nil {
		if err := t.tp.Shutdown(ctx); err != nil {
			log.ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
			return fmt.Errorf("failed to shutdown tracer provider: %w", err)
		}
	}

	log.DebugContext(ctx, "Tracing shutdown")
	return nil
}
