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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caas-team/netpolicy-demo/internal/logger"
	"github.com/caas-team/netpolicy-demo/pkg/config"
	"github.com/caas-team/netpolicy-demo/pkg/probe"
	"github.com/caas-team/netpolicy-demo/pkg/services"
	"github.com/caas-team/netpolicy-demo/pkg/services/backend"
	"github.com/caas-team/netpolicy-demo/pkg/services/external"
	"github.com/caas-team/netpolicy-demo/pkg/services/frontend"
)

// NewCmdBackend creates the command running the backend app
func NewCmdBackend() *cobra.Command {
	return &cobra.Command{
		Use:   "backend",
		Short: "Run the backend app",
		Long:  "The backend app answers on /api/data and should only be reachable via internal routing",
		RunE: runService(func(*config.Config) services.Service {
			return backend.New()
		}),
	}
}

// NewCmdFrontend creates the command running the frontend app
func NewCmdFrontend() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frontend",
		Short: "Run the frontend app",
		Long:  "The frontend app calls the backend app via container-to-container networking on /call-backend",
	}

	NewFlag(flagMapping.BackendURL, flagMapping.BackendURL, "BACKEND_URL").String().Bind(cmd, config.DefaultBackendURL,
		"frontend: The internal url of the backend data endpoint")
	NewFlag(flagMapping.BackendTimeout, flagMapping.BackendTimeout, "BACKEND_TIMEOUT").Duration().Bind(cmd, config.DefaultProbeTimeout,
		"frontend: The timeout of the call to the backend")

	cmd.RunE = runService(func(cfg *config.Config) services.Service {
		return frontend.New(cfg.Backend, newProber())
	}, applyFrontendConfig)
	return cmd
}

// NewCmdExternal creates the command running the external client app
func NewCmdExternal() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "external-client",
		Short: "Run the external client app",
		Long:  "The external client calls a public endpoint on /test-external and resolves a public hostname on /test-dns",
	}

	NewFlag(flagMapping.ExternalURL, flagMapping.ExternalURL, "EXTERNAL_URL").String().Bind(cmd, config.DefaultExternalURL,
		"external: The public url that is called")
	NewFlag(flagMapping.ExternalTimeout, flagMapping.ExternalTimeout, "EXTERNAL_TIMEOUT").Duration().Bind(cmd, config.DefaultExternalTimeout,
		"external: The timeout of the call to the public url")
	NewFlag(flagMapping.DNSHost, flagMapping.DNSHost, "DNS_HOST").String().Bind(cmd, config.DefaultDNSHost,
		"external: The public hostname that is resolved")
	NewFlag(flagMapping.DNSTimeout, flagMapping.DNSTimeout, "DNS_TIMEOUT").Duration().Bind(cmd, config.DefaultProbeTimeout,
		"external: The timeout of the dns resolution")

	cmd.RunE = runService(func(cfg *config.Config) services.Service {
		return external.New(cfg.External, newProber())
	}, applyExternalConfig)
	return cmd
}

func applyFrontendConfig(cfg *config.Config) {
	cfg.SetBackendURL(viper.GetString(flagMapping.BackendURL))
	cfg.SetBackendTimeout(viper.GetDuration(flagMapping.BackendTimeout))
}

func applyExternalConfig(cfg *config.Config) {
	cfg.SetExternalURL(viper.GetString(flagMapping.ExternalURL))
	cfg.SetExternalTimeout(viper.GetDuration(flagMapping.ExternalTimeout))
	cfg.SetDNSHost(viper.GetString(flagMapping.DNSHost))
	cfg.SetDNSTimeout(viper.GetDuration(flagMapping.DNSTimeout))
}

// newProber creates a prober using the traced client of the request context
func newProber() probe.Prober {
	return probe.New()
}

// runService loads the config and runs the created service until SIGINT or SIGTERM
func runService(newService func(*config.Config) services.Service, apply ...func(*config.Config)) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(logger.IntoContext(context.Background(), logger.NewLogger()), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(ctx, apply...)
		if err != nil {
			return err
		}

		svc := newService(cfg)
		return services.Run(ctx, cfg, svc, cmd.Root().Version)
	}
}
