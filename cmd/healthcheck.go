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

package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/caas-team/netpolicy-demo/internal/logger"
	"github.com/caas-team/netpolicy-demo/pkg/healthz"
)

const healthcheckTimeout = 5 * time.Second

// errUnhealthy is returned when the local app does not answer
var errUnhealthy = errors.New("app is unhealthy")

// NewCmdHealthcheck creates the command checking the app running on the configured port.
// It only requests pages that never trigger outbound traffic.
func NewCmdHealthcheck() *cobra.Command {
	return &cobra.Command{
		Use:   "healthcheck",
		Short: "Check whether the app on the configured port is serving",
		Long:  "Exits with a non-zero code if the app does not answer on /metrics, /openapi and its landing page",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(logger.IntoContext(context.Background(), logger.NewLogger()), healthcheckTimeout)
			defer cancel()

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if !healthz.New(cfg.Api.ListeningAddress).CheckOverallHealth(ctx, "/", "/openapi") {
				return errUnhealthy
			}
			return nil
		},
	}
}
