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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/caas-team/netpolicy-demo/internal/httpclient"
	"github.com/caas-team/netpolicy-demo/internal/logger"
)

// maxBodySize is the largest response body accepted as payload.
const maxBodySize = 1 << 20

func (p *prober) getHTTP(ctx context.Context, target string, timeout time.Duration) ([]byte, error) {
	log := logger.FromContext(ctx).With("url", target)

	if err := validateURL(target); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		log.ErrorContext(ctx, "Error while creating request", "error", err)
		return nil, err
	}

	base := p.client
	if base == nil {
		base = httpclient.FromContext(ctx)
	}
	client := *base
	client.Timeout = timeout

	resp, err := client.Do(req)
	if err != nil {
		log.DebugContext(ctx, "Error while requesting target", "error", err)
		return nil, err
	}
	defer func() {
		if cErr := resp.Body.Close(); cErr != nil {
			log.ErrorContext(ctx, "Failed to close response body", "error", cErr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed reading response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.DebugContext(ctx, "Request was not successful", "status", resp.Status)
		return nil, ErrUnexpectedStatus{Code: resp.StatusCode, Status: resp.Status}
	}
	if len(body) > maxBodySize {
		log.DebugContext(ctx, "Response body is too large", "limit", maxBodySize)
		return nil, ErrBodyTooLarge{Limit: maxBodySize}
	}

	return body, nil
}

func validateURL(target string) error {
	if target == "" {
		return ErrEmptyTarget
	}
	u, err := url.Parse(target)
	if err != nil {
		return ErrInvalidTarget{Target: target, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidTarget{Target: target, Reason: "url must start with 'http://' or 'https://'"}
	}
	if u.Host == "" {
		return ErrInvalidTarget{Target: target, Reason: "url has no host"}
	}
	return nil
}
