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
	"net"
	"time"
)

//go:generate moq -out resolver_moq.go . Resolver

// Resolver resolves hostnames to IP addresses.
type Resolver interface {
	// LookupIP looks up host for the given network ("ip", "ip4" or "ip6").
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

type resolver struct {
	*net.Resolver
}

func newResolver(dialTimeout time.Duration) Resolver {
	d := &net.Dialer{Timeout: dialTimeout}
	return &resolver{
		Resolver: &net.Resolver{
			// We need to set this so the custom dialer is used
			PreferGo: true,
			Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
				return d.DialContext(ctx, network, address)
			},
		},
	}
}
