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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caas-team/netpolicy-demo/internal/logger"
	"github.com/caas-team/netpolicy-demo/pkg/config"
	"github.com/caas-team/netpolicy-demo/pkg/tracing"
)

var flagMapping = config.RunFlagsNameMapping{
	Port:            "port",
	BackendURL:      "backendUrl",
	BackendTimeout:  "backendTimeout",
	ExternalURL:     "externalUrl",
	ExternalTimeout: "externalTimeout",
	DNSHost:         "dnsHost",
	DNSTimeout:      "dnsTimeout",
	TracingExporter: "tracingExporter",
	TracingUrl:      "tracingUrl",
	TracingToken:    "tracingToken",
	TracingCertPath: "tracingCertPath",
}

// NewCmdRoot creates the root command holding the flags shared by all apps
func NewCmdRoot(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "netpolicy-demo",
		Short: "Demo apps for container-to-container networking and application security groups",
		Long: "netpolicy-demo contains three small apps showing whether internal routing\n" +
			"between apps and egress traffic to the internet are permitted by the platform.\n" +
			"Every app is run by its own subcommand and deployed independently.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	NewFlag(flagMapping.Port, flagMapping.Port, "PORT").Int().Bind(rootCmd, config.DefaultPort, "api: The port the app is listening on")
	NewFlag(flagMapping.TracingExporter, flagMapping.TracingExporter, "TRACING_EXPORTER").String().Bind(rootCmd, tracing.NOOP.String(),
		"tracing: The exporter of the spans, one of grpc, http, stdout or noop")
	NewFlag(flagMapping.TracingUrl, flagMapping.TracingUrl, "OTEL_EXPORTER_OTLP_ENDPOINT").String().Bind(rootCmd, "",
		"tracing: The url of the collector the spans are exported to")
	NewFlag(flagMapping.TracingToken, flagMapping.TracingToken, "TRACING_TOKEN").String().Bind(rootCmd, "",
		"tracing: The bearer token to authenticate at the collector")
	NewFlag(flagMapping.TracingCertPath, flagMapping.TracingCertPath, "TRACING_CERT_PATH").String().Bind(rootCmd, "",
		"tracing: The path to the CA certificate of the collector. The connection is insecure if empty")

	return rootCmd
}

// Execute runs the root command with all apps as subcommands
func Execute(version string) {
	cmd := NewCmdRoot(version)
	cmd.AddCommand(NewCmdBackend())
	cmd.AddCommand(NewCmdFrontend())
	cmd.AddCommand(NewCmdExternal())
	cmd.AddCommand(NewCmdHealthcheck())
	cmd.AddCommand(NewCmdGenDocs(cmd))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the shared config from the bound flags and environment,
// applies the app specific values and validates the result
func loadConfig(ctx context.Context, apply ...func(cfg *config.Config)) (*config.Config, error) {
	log := logger.FromContext(ctx)
	cfg := config.NewConfig()

	cfg.SetPort(viper.GetInt(flagMapping.Port))
	cfg.SetTracingExporter(viper.GetString(flagMapping.TracingExporter))
	cfg.SetTracingUrl(viper.GetString(flagMapping.TracingUrl))
	cfg.SetTracingToken(viper.GetString(flagMapping.TracingToken))
	cfg.SetTracingCertPath(viper.GetString(flagMapping.TracingCertPath))
	for _, fn := range apply {
		fn(cfg)
	}

	if err := cfg.Validate(ctx, &flagMapping); err != nil {
		log.Error("Error while validating the config", "error", err)
		return nil, err
	}
	return cfg, nil
}
