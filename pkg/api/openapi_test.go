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

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type samplePayload struct {
	Message   string `json:"message"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

func testRoutes() []Route {
	noop := func(w http.ResponseWriter, r *http.Request) {}
	return []Route{
		{Path: "/", Method: http.MethodGet, Handler: noop, Doc: &Doc{Summary: "Landing page"}},
		{Path: "/api/data", Method: http.MethodGet, Handler: noop, Doc: &Doc{
			Summary:     "Backend data",
			ContentType: ContentTypeJSON,
			Schema:      samplePayload{},
		}},
		{Path: "/call-backend", Method: http.MethodGet, Handler: noop, Doc: &Doc{
			Summary:  "Calls the backend",
			Statuses: []int{http.StatusInternalServerError, http.StatusOK},
		}},
		{Path: "/metrics", Method: "Handle", Handler: noop},
	}
}

func TestOpenAPI(t *testing.T) {
	doc, err := OpenAPI(context.Background(), Info{Title: "backend", Version: "v0.0.1"}, testRoutes())
	require.NoError(t, err)

	assert.Equal(t, "backend", doc.Info.Title)
	assert.Len(t, doc.Paths, 3, "undocumented routes must be skipped")

	landing := doc.Paths["/"].Get
	require.NotNil(t, landing)
	assert.Equal(t, "Landing page", landing.Description)
	assert.Contains(t, landing.Responses["200"].Value.Content, ContentTypeHTML)

	data := doc.Paths["/api/data"].Get
	require.NotNil(t, data)
	schema := data.Responses["200"].Value.Content[ContentTypeJSON].Schema.Value
	for _, field := range []string{"message", "source", "timestamp"} {
		assert.Contains(t, schema.Properties, field)
	}

	call := doc.Paths["/call-backend"].Get
	require.NotNil(t, call)
	assert.Contains(t, call.Responses, "200")
	assert.Contains(t, call.Responses, "500")
}

func TestOpenAPIHandler(t *testing.T) {
	doc, err := OpenAPI(context.Background(), Info{Title: "frontend"}, testRoutes())
	require.NoError(t, err)
	h := OpenAPIHandler(doc)

	tests := []struct {
		name        string
		accept      string
		contentType string
		decode      func(body string) error
	}{
		{
			name:        "yaml by default",
			accept:      "",
			contentType: "text/yaml",
			decode: func(body string) error {
				var out map[string]any
				return yaml.NewDecoder(strings.NewReader(body)).Decode(&out)
			},
		},
		{
			name:        "json on request",
			accept:      ContentTypeJSON,
			contentType: ContentTypeJSON,
			decode: func(body string) error {
				var out map[string]any
				return json.Unmarshal([]byte(body), &out)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/openapi", http.NoBody)
			req.Header.Set("Accept", tt.accept)
			rec := httptest.NewRecorder()

			h(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.NoError(t, tt.decode(rec.Body.String()))
			assert.Contains(t, rec.Body.String(), "/call-backend")
		})
	}
}
