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
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestTracer_Initialize(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "stdout exporter",
			config: Config{Exporter: STDOUT},
		},
		{
			name:   "http exporter",
			config: Config{Exporter: HTTP, Url: "http://localhost:4318"},
		},
		{
			name:   "grpc exporter with token",
			config: Config{Exporter: GRPC, Url: "http://localhost:4317", Token: "my-super-secret-token"},
		},
		{
			name:   "no exporter",
			config: Config{Exporter: NOOP},
		},
		{
			name:    "unsupported exporter",
			config:  Config{Exporter: "unsupported"},
			wantErr: true,
		},
		{
			name:    "missing certificate",
			config:  Config{Exporter: GRPC, Url: "https://localhost:4317", CertPath: "/does/not/exist.pem"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.config, "netpolicy-demo-test", "v0.0.0")
			err := tr.Initialize(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
			assert.True(t, ok, "global tracer provider is %T", otel.GetTracerProvider())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			// a canceled context skips the export of pending spans
			_ = tr.Shutdown(ctx)
		})
	}
}

func TestTracer_Shutdown_NotInitialized(t *testing.T) {
	assert.NoError(t, New(Config{}, "netpolicy-demo-test", "v0.0.0").Shutdown(context.Background()))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "empty config", config: Config{}},
		{name: "noop", config: Config{Exporter: NOOP}},
		{name: "stdout without url", config: Config{Exporter: STDOUT}},
		{name: "grpc with url", config: Config{Exporter: GRPC, Url: "http://otel-collector:4317"}},
		{name: "grpc without url", config: Config{Exporter: GRPC}, wantErr: true},
		{name: "http without scheme", config: Config{Exporter: HTTP, Url: "otel-collector:4318"}, wantErr: true},
		{name: "unknown exporter", config: Config{Exporter: "zipkin"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTLSConfig(t *testing.T) {
	srv := httptest.NewTLSServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	valid := filepath.Join(dir, "ca.pem")
	require.NoError(t, os.WriteFile(valid, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw}), 0o600))
	invalid := filepath.Join(dir, "invalid.pem")
	require.NoError(t, os.WriteFile(invalid, []byte("not a certificate"), 0o600))

	tests := []struct {
		name     string
		certPath string
		wantNil  bool
		wantErr  bool
	}{
		{name: "no certificate", certPath: "", wantNil: true},
		{name: "valid certificate", certPath: valid},
		{name: "invalid certificate", certPath: invalid, wantNil: true, wantErr: true},
		{name: "missing certificate", certPath: filepath.Join(dir, "missing.pem"), wantNil: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tlsConfig(tt.certPath)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.NotNil(t, got.RootCAs)
		})
	}
}

func TestConnectionConfig(t *testing.T) {
	headers, tlsCfg, err := connectionConfig(&Config{Token: "secret"})
	require.NoError(t, err)
	assert.Nil(t, tlsCfg)
	assert.Equal(t, map[string]string{"Authorization": "Bearer secret"}, headers)
}
