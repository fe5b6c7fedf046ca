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
	"errors"
	"fmt"
)

// ErrEmptyTarget is returned when a probe has no address to work with
var ErrEmptyTarget = errors.New("probe target must not be empty")

// ErrUnexpectedStatus is returned when an http target answers with a non 2xx status
type ErrUnexpectedStatus struct {
	Code   int
	Status string
}

func (e ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("request failed, status is %s", e.Status)
}

// ErrNoAddresses is returned when a hostname resolves without any A record
type ErrBodyTooLarge struct {
	Limit int
}

func (e ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("response body exceeds %d bytes", e.Limit)
}

type ErrNoAddresses struct {
	Host string
}

func (e ErrNoAddresses) Error() string {
	return fmt.Sprintf("no A records found for %q", e.Host)
}

// ErrInvalidTarget is returned when the address of a target cannot be used for its kind
type ErrInvalidTarget struct {
	Target string
	Reason string
}

func (e ErrInvalidTarget) Error() string {
	return fmt.Sprintf("invalid probe target %q: %s", e.Target, e.Reason)
}

// ErrUnknownKind is returned for targets of an unsupported kind
type ErrUnknownKind struct {
	Kind Kind
}

func (e ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown probe kind %q", e.Kind)
}
