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

package test

import (
	"net"
	"testing"

	"github.com/caas-team/netpolicy-demo/pkg/config"
	"github.com/caas-team/netpolicy-demo/pkg/services"
)

// Framework creates end-to-end tests running the demo apps on local ports
type Framework struct {
	t *testing.T
}

func NewFramework(t *testing.T) *Framework {
	t.Helper()
	return &Framework{t: t}
}

// E2E creates a new end-to-end test. It is skipped in short mode.
func (f *Framework) E2E(t *testing.T) *E2E {
	MarkAsLong(t)
	return &E2E{t: t, apps: map[string]*app{}}
}

// NewConfig returns the default config listening on a free local port
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	if err = l.Close(); err != nil {
		t.Fatalf("Failed to release port %d: %v", port, err)
	}

	cfg := config.NewConfig()
	cfg.SetPort(port)
	return cfg
}

type app struct {
	svc services.Service
	cfg *config.Config
}
