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
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
)

func TestChecker_CheckOverallHealth(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	ok := httpmock.NewStringResponder(http.StatusOK, http.StatusText(http.StatusOK))
	unavailable := httpmock.NewStringResponder(http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable))

	tests := []struct {
		name       string
		responders map[string]httpmock.Responder
		paths      []string
		want       bool
	}{
		{
			name:       "metrics healthy",
			responders: map[string]httpmock.Responder{"/metrics": ok},
			want:       true,
		},
		{
			name:       "metrics unhealthy",
			responders: map[string]httpmock.Responder{"/metrics": unavailable},
			want:       false,
		},
		{
			name:       "all paths healthy",
			responders: map[string]httpmock.Responder{"/metrics": ok, "/": ok, "/openapi": ok},
			paths:      []string{"/", "/openapi"},
			want:       true,
		},
		{
			name:       "landing page unhealthy",
			responders: map[string]httpmock.Responder{"/metrics": ok, "/": unavailable, "/openapi": ok},
			paths:      []string{"/", "/openapi"},
			want:       false,
		},
		{
			name:       "app not running",
			responders: map[string]httpmock.Responder{},
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			for path, r := range tt.responders {
				httpmock.RegisterResponder(http.MethodGet, "http://localhost:8080"+path, r)
			}

			c := &checker{addr: "localhost:8080", client: &http.Client{}}
			if got := c.CheckOverallHealth(context.Background(), tt.paths...); got != tt.want {
				t.Errorf("CheckOverallHealth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want string
	}{
		{name: "port only", addr: ":8080", want: "localhost:8080"},
		{name: "unspecified ipv4", addr: "0.0.0.0:3000", want: "localhost:3000"},
		{name: "unspecified ipv6", addr: "[::]:3000", want: "localhost:3000"},
		{name: "loopback", addr: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "invalid", addr: "localhost", want: "localhost:8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAddress(tt.addr); got != tt.want {
				t.Errorf("formatAddress(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	c := New(":4000").(*checker)
	if c.addr != "localhost:4000" {
		t.Errorf("New() addr = %q, want %q", c.addr, "localhost:4000")
	}
}
