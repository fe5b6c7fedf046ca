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
	"strings"

	"github.com/caas-team/netpolicy-demo/internal/logger"
)

func (p *prober) getDNS(ctx context.Context, host string) ([]string, error) {
	log := logger.FromContext(ctx).With("host", host)

	if host == "" {
		return nil, ErrEmptyTarget
	}
	if strings.Contains(host, "://") {
		return nil, ErrInvalidTarget{Target: host, Reason: "hostname must not contain a scheme"}
	}

	ips, err := p.resolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		log.DebugContext(ctx, "Error while looking up host", "error", err)
		return nil, err
	}

	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		if ip == nil {
			continue
		}
		addrs = append(addrs, ip.String())
	}
	if len(addrs) == 0 {
		return nil, ErrNoAddresses{Host: host}
	}

	return addrs, nil
}
