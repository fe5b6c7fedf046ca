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
	"net/url"

	"github.com/caas-team/netpolicy-demo/internal/logger"
)

// Config configures how the spans of a service are exported
type Config struct {
	// Exporter is the exporter used to export the spans
	Exporter Exporter `yaml:"exporter" mapstructure:"exporter"`
	// Url is the endpoint of the collector the spans are exported to
	Url string `yaml:"url" mapstructure:"url"`
	// Token is sent as bearer token to the collector
	Token string `yaml:"token" mapstructure:"token"`
	// CertPath is the path to the CA certificate of the collector.
	// Without a certificate the connection to the collector is insecure.
	CertPath string `yaml:"certPath" mapstructure:"certPath"`
}

// Validate checks that the exporter is known and that exporting exporters have a valid url
func (c *Config) Validate(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := c.Exporter.Validate(); err != nil {
		log.ErrorContext(ctx, "Invalid exporter", "error", err)
		return err
	}

	if !c.Exporter.IsExporting() {
		return nil
	}
	if c.Url == "" {
		log.ErrorContext(ctx, "Url is required for otlp exporter", "exporter", c.Exporter)
		return fmt.Errorf("url is required for otlp exporter %q", c.Exporter)
	}
	if u, err := url.Parse(c.Url); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		log.ErrorContext(ctx, "Url of otlp exporter must be an http(s) url", "url", c.Url)
		return fmt.Errorf("invalid url for otlp exporter %q: %q", c.Exporter, c.Url)
	}
	return nil
}
