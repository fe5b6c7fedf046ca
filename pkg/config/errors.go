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

import "errors"

var (
	// ErrInvalidPort is returned when the port is out of range
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidBackendURL is returned when the backend url is not a valid http url
	ErrInvalidBackendURL = errors.New("invalid backend url")
	// ErrInvalidExternalURL is returned when the external url is not a valid http url
	ErrInvalidExternalURL = errors.New("invalid external url")
	// ErrInvalidDNSHost is returned when the dns host is not a plain hostname
	ErrInvalidDNSHost = errors.New("invalid dns host")
	// ErrInvalidTimeout is returned when a probe timeout is not positive
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrInvalidTracing is returned when the tracing config is invalid
	ErrInvalidTracing = errors.New("invalid tracing config")
)
