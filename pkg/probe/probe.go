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
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/caas-team/netpolicy-demo/internal/logger"
)

// DefaultTimeout bounds every probe whose target does not carry its own timeout.
const DefaultTimeout = 10 * time.Second

// Kind is the kind of outbound operation a probe performs.
type Kind string

const (
	// KindHTTP performs a single HTTP GET request.
	KindHTTP Kind = "http"
	// KindDNS performs a single A record resolution.
	KindDNS Kind = "dns"
)

func (k Kind) String() string {
	return string(k)
}

// Target describes what a probe is pointed at.
type Target struct {
	// Kind is the operation performed against the address.
	Kind Kind
	// Address is a URL for http targets and a hostname for dns targets.
	Address string
	// Timeout bounds the whole attempt. Zero means the prober's default timeout.
	Timeout time.Duration
}

// HTTP returns a target for an HTTP GET against url.
func HTTP(url string, timeout time.Duration) Target {
	return Target{Kind: KindHTTP, Address: url, Timeout: timeout}
}

// DNS returns a target for an A record resolution of host.
func DNS(host string, timeout time.Duration) Target {
	return Target{Kind: KindDNS, Address: host, Timeout: timeout}
}

// Result is the outcome of a single probe attempt.
// Payload is only set if Succeeded is true, Error only if it is false.
type Result struct {
	Target    string        `json:"target"`
	Kind      Kind          `json:"kind"`
	Succeeded bool          `json:"succeeded"`
	Payload   any           `json:"payload,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// Body returns the response body of a successful http probe.
func (r Result) Body() []byte {
	if b, ok := r.Payload.([]byte); ok {
		return b
	}
	return nil
}

// Addresses returns the resolved addresses of a successful dns probe.
func (r Result) Addresses() []string {
	if a, ok := r.Payload.([]string); ok {
		return a
	}
	return nil
}

// WithError returns a copy of the result turned into a failure with the given error.
func (r Result) WithError(err error) Result {
	r.Succeeded = false
	r.Payload = nil
	r.Error = err.Error()
	return r
}

//go:generate moq -out prober_moq.go . Prober

// Prober performs reachability probes.
type Prober interface {
	// Probe performs exactly one attempt against the target and reports the outcome.
	// It never returns an error; every failure is reported through the Result.
	Probe(ctx context.Context, target Target) Result
	// GetMetricCollectors returns the prometheus collectors of the prober.
	GetMetricCollectors() []prometheus.Collector
}

var _ Prober = (*prober)(nil)

type prober struct {
	client   *http.Client
	resolver Resolver
	timeout  time.Duration
	metrics  metrics
	tracer   trace.Tracer
}

// Option configures a Prober.
type Option func(*prober)

// WithClient sets the http client used for http probes.
// Without a client the one embedded in the request context is used.
func WithClient(c *http.Client) Option {
	return func(p *prober) {
		p.client = c
	}
}

// WithResolver sets the resolver used for dns probes.
func WithResolver(r Resolver) Option {
	return func(p *prober) {
		p.resolver = r
	}
}

// WithDefaultTimeout sets the timeout applied to targets without their own timeout.
func WithDefaultTimeout(d time.Duration) Option {
	return func(p *prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// New creates a new Prober.
func New(opts ...Option) Prober {
	p := &prober{
		timeout: DefaultTimeout,
		metrics: newMetrics(),
		tracer:  otel.Tracer("github.com/caas-team/netpolicy-demo/pkg/probe"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.resolver == nil {
		p.resolver = newResolver(p.timeout)
	}
	return p
}

func (p *prober) Probe(ctx context.Context, target Target) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.FromContext(ctx).With("kind", target.Kind.String(), "target", target.Address)

	timeout := target.Timeout
	if timeout <= 0 {
		timeout = p.timeout
	}

	ctx, span := p.tracer.Start(ctx, "probe."+target.Kind.String(), trace.WithAttributes(
		attribute.String("probe.kind", target.Kind.String()),
		attribute.String("probe.target", target.Address),
		attribute.String("probe.timeout", timeout.String()),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := Result{
		Target:    target.Address,
		Kind:      target.Kind,
		Timestamp: time.Now().UTC(),
	}

	log.DebugContext(ctx, "Starting probe", "timeout", timeout.String())
	start := time.Now()
	var (
		payload any
		err     error
	)
	switch target.Kind {
	case KindHTTP:
		payload, err = p.getHTTP(ctx, target.Address, timeout)
	case KindDNS:
		payload, err = p.getDNS(ctx, target.Address)
	default:
		err = ErrUnknownKind{Kind: target.Kind}
	}
	res.Duration = time.Since(start)

	if err != nil {
		res.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, res.Error)
		log.WarnContext(ctx, "Probe failed", "error", err, "duration", res.Duration.String())
	} else {
		res.Succeeded = true
		res.Payload = payload
		span.SetStatus(codes.Ok, "")
		log.DebugContext(ctx, "Probe succeeded", "duration", res.Duration.String())
	}

	p.metrics.Set(res)
	return res
}

func (p *prober) GetMetricCollectors() []prometheus.Collector {
	return p.metrics.GetCollectors()
}
