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

package config

import (
	"fmt"
	"time"

	"github.com/caas-team/netpolicy-demo/pkg/tracing"
)

const (
	// DefaultPort is used when no port is configured
	DefaultPort = 8080
	// DefaultBackendURL is the internal route of the backend app
	DefaultBackendURL = "http://backend-app.apps.internal:8080/api/data"
	// DefaultExternalURL is the public endpoint the external client calls
	DefaultExternalURL = "https://httpbin.org/json"
	// DefaultDNSHost is the public hostname the external client resolves
	DefaultDNSHost = "httpbin.org"
	// DefaultExternalTimeout bounds the call to the public endpoint
	DefaultExternalTimeout = 5 * time.Second
	// DefaultProbeTimeout bounds the backend call and the dns resolution
	DefaultProbeTimeout = 10 * time.Second
)

type Config struct {
	Api      ApiConfig
	Backend  BackendConfig
	External ExternalConfig
	Tracing  tracing.Config
}

type ApiConfig struct {
	ListeningAddress string
	port             int
}

// BackendConfig is the target of the frontend
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// ExternalConfig holds the targets of the external client
type ExternalConfig struct {
	URL        string
	Timeout    time.Duration
	DNSHost    string
	DNSTimeout time.Duration
}

// NewConfig returns a config with every value set to its default
func NewConfig() *Config {
	c := &Config{
		Backend: BackendConfig{
			URL:     DefaultBackendURL,
			Timeout: DefaultProbeTimeout,
		},
		External: ExternalConfig{
			URL:        DefaultExternalURL,
			Timeout:    DefaultExternalTimeout,
			DNSHost:    DefaultDNSHost,
			DNSTimeout: DefaultProbeTimeout,
		},
		Tracing: tracing.Config{
			Exporter: tracing.NOOP,
		},
	}
	c.SetPort(DefaultPort)
	return c
}

func (c *Config) SetPort(port int) {
	c.Api.port = port
	c.Api.ListeningAddress = fmt.Sprintf(":%d", port)
}

func (c *Config) SetBackendURL(url string) {
	c.Backend.URL = url
}

func (c *Config) SetBackendTimeout(timeout time.Duration) {
	c.Backend.Timeout = timeout
}

func (c *Config) SetExternalURL(url string) {
	c.External.URL = url
}

func (c *Config) SetExternalTimeout(timeout time.Duration) {
	c.External.Timeout = timeout
}

func (c *Config) SetDNSHost(host string) {
	c.External.DNSHost = host
}

func (c *Config) SetDNSTimeout(timeout time.Duration) {
	c.External.DNSTimeout = timeout
}

func (c *Config) SetTracingExporter(exporter string) {
	c.Tracing.Exporter = tracing.Exporter(exporter)
}

func (c *Config) SetTracingUrl(url string) {
	c.Tracing.Url = url
}

func (c *Config) SetTracingToken(token string) {
	c.Tracing.Token = token
}

func (c *Config) SetTracingCertPath(path string) {
	c.Tracing.CertPath = path
}
