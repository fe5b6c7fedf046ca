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
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caas-team/netpolicy-demo/internal/logger"
)

// Validate validates the config and logs every invalid value with the name of its flag
func (c *Config) Validate(ctx context.Context, fm *RunFlagsNameMapping) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx).WithGroup("configValidation")

	var errs []error
	if c.Api.port < 1 || c.Api.port > 65535 {
		log.ErrorContext(ctx, "The port must be between 1 and 65535", fm.Port, c.Api.port)
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidPort, c.Api.port))
	}

	if !isHTTPURL(c.Backend.URL) {
		log.ErrorContext(ctx, "The backend url is not a valid http url", fm.BackendURL, c.Backend.URL)
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBackendURL, c.Backend.URL))
	}

	if !isHTTPURL(c.External.URL) {
		log.ErrorContext(ctx, "The external url is not a valid http url", fm.ExternalURL, c.External.URL)
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidExternalURL, c.External.URL))
	}

	if c.External.DNSHost == "" || strings.ContainsAny(c.External.DNSHost, ":/ ") {
		log.ErrorContext(ctx, "The dns host must be a plain hostname", fm.DNSHost, c.External.DNSHost)
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDNSHost, c.External.DNSHost))
	}

	timeouts := []struct {
		flag    string
		timeout time.Duration
	}{
		{flag: fm.BackendTimeout, timeout: c.Backend.Timeout},
		{flag: fm.ExternalTimeout, timeout: c.External.Timeout},
		{flag: fm.DNSTimeout, timeout: c.External.DNSTimeout},
	}
	for _, t := range timeouts {
		if t.timeout <= 0 {
			log.ErrorContext(ctx, "The timeout must be positive", t.flag, t.timeout)
			errs = append(errs, fmt.Errorf("%w: %s=%v", ErrInvalidTimeout, t.flag, t.timeout))
		}
	}

	if err := c.Tracing.Validate(ctx); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidTracing, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation of configuration failed: %w", errors.Join(errs...))
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
