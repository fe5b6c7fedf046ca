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

package test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/netpolicy-demo/pkg/api"
	"github.com/caas-team/netpolicy-demo/pkg/services/backend"
)

// newSchemaServer serves the backend routes together with their openapi document
func newSchemaServer(t *testing.T) *httptest.Server {
	t.Helper()
	b := backend.New()
	routes := b.Routes()
	doc, err := api.OpenAPI(context.Background(), api.Info{Title: b.Name(), Version: testVersion}, routes)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/openapi", api.OpenAPIHandler(doc))
	for _, r := range routes {
		if r.Path == "/" {
			continue
		}
		mux.HandleFunc(r.Path, r.Handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHttpAsserter_WithSchema(t *testing.T) {
	srv := newSchemaServer(t)
	e := &E2E{t: t, apps: map[string]*app{}, running: true}

	e.HttpAssertion(srv.URL + "/api/data").
		WithSchema().
		WithBodyContaining(`"message":"Hello from Backend!"`).
		Assert(http.StatusOK)
}

func TestHttpAsserter_assertSchema(t *testing.T) {
	srv := newSchemaServer(t)
	e := &E2E{t: t, apps: map[string]*app{}, running: true}
	a := e.HttpAssertion(srv.URL + "/api/data").WithSchema()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/api/data", http.NoBody)
	require.NoError(t, err)

	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantErr     string
	}{
		{
			name:        "documented response",
			status:      http.StatusOK,
			contentType: "application/json; charset=utf-8",
			body:        `{"message":"m","source":"s","timestamp":"2024-03-01T11:30:45.123Z"}`,
		},
		{
			name:        "undocumented status",
			status:      http.StatusInternalServerError,
			contentType: "application/json; charset=utf-8",
			body:        `{}`,
			wantErr:     "no response defined in OpenAPI schema for status code 500",
		},
		{
			name:        "undocumented content type",
			status:      http.StatusOK,
			contentType: "text/html; charset=utf-8",
			body:        "<html></html>",
			wantErr:     `no media type defined in OpenAPI schema for Content-Type "text/html"`,
		},
		{
			name:        "body not matching the schema",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"message":42}`,
			wantErr:     "response body does not match schema",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tt.status,
				Header:     http.Header{"Content-Type": []string{tt.contentType}},
				Body:       io.NopCloser(strings.NewReader(tt.body)),
				Request:    req,
			}

			err := a.assertSchema(resp, []byte(tt.body))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
