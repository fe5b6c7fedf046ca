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

package healthz

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/caas-team/netpolicy-demo/internal/logger"
)

// Checker checks whether a locally running app is serving
type Checker interface {
	// CheckOverallHealth reports whether the app answers with 200 on /metrics and on every given path.
	// Only paths that never trigger outbound traffic should be given.
	CheckOverallHealth(ctx context.Context, paths ...string) bool
}

type checker struct {
	addr   string
	client *http.Client
}

// New creates a checker for the app listening on address
func New(address string) Checker {
	return &checker{
		addr:   formatAddress(address),
		client: &http.Client{},
	}
}

func (c *checker) CheckOverallHealth(ctx context.Context, paths ...string) bool {
	log := logger.FromContext(ctx)
	for _, path := range append([]string{"/metrics"}, paths...) {
		if !c.isPathHealthy(ctx, path) {
			log.Warn("App is unhealthy", "addr", c.addr, "path", path)
			return false
		}
	}
	return true
}

func (c *checker) isPathHealthy(ctx context.Context, path string) bool {
	log := logger.FromContext(ctx).With("path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://%s%s", c.addr, path), http.NoBody)
	if err != nil {
		log.Error("Failed to create request", "error", err)
		return false
	}

	resp, err := c.client.Do(req) //nolint:bodyclose // closed in defer
	if err != nil {
		log.Error("Failed to send request", "error", err)
		return false
	}
	defer func() {
		if cErr := resp.Body.Close(); cErr != nil {
			log.Error("Failed to close response body", "error", cErr)
		}
	}()

	return resp.StatusCode == http.StatusOK
}

// formatAddress turns a listening address into an address reachable from the same host
func formatAddress(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return net.JoinHostPort("localhost", "8080")
	}
	if host == "" || net.ParseIP(host).IsUnspecified() {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
