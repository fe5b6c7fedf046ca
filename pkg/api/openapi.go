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
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"gopkg.in/yaml.v3"

	"github.com/caas-team/netpolicy-demo/internal/logger"
)

const (
	ContentTypeHTML = "text/html"
	ContentTypeJSON = "application/json"
)

// Doc describes a route for the openapi document
type Doc struct {
	// Summary is a short description of what the route does
	Summary string
	// ContentType of the response body
	ContentType string
	// Schema is a sample value of the response body used to derive the schema.
	// Nil documents the body as a string.
	Schema any
	// Statuses are the possible response codes. Defaults to 200.
	Statuses []int
}

// Info is the service specific part of the openapi document
type Info struct {
	Title       string
	Description string
	Version     string
}

// OpenAPI creates the openapi document describing all documented routes
func OpenAPI(ctx context.Context, info Info, routes []Route) (openapi3.T, error) {
	log := logger.FromContext(ctx)
	doc := openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       info.Title,
			Description: info.Description,
			Version:     info.Version,
			Contact: &openapi3.Contact{
				URL:   "https://caas.telekom.de",
				Email: "caas-request@telekom.de",
				Name:  "CaaS Team",
			},
		},
		Paths:      make(openapi3.Paths),
		Extensions: make(map[string]any),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
		Servers: openapi3.Servers{},
	}

	for _, route := range routes {
		if route.Doc == nil {
			continue
		}
		ref, err := schemaFor(route.Doc.Schema)
		if err != nil {
			log.Error("Failed to get schema for route", "path", route.Path, "error", err)
			return openapi3.T{}, &ErrCreateOpenapiSchema{path: route.Path, err: err}
		}

		contentType := route.Doc.ContentType
		if contentType == "" {
			contentType = ContentTypeHTML
		}
		statuses := route.Doc.Statuses
		if len(statuses) == 0 {
			statuses = []int{http.StatusOK}
		}
		sort.Ints(statuses)

		responses := openapi3.Responses{}
		for _, status := range statuses {
			desc := http.StatusText(status)
			responses[fmt.Sprint(status)] = &openapi3.ResponseRef{
				Value: &openapi3.Response{
					Description: &desc,
					Content:     openapi3.NewContentWithSchemaRef(ref, []string{contentType}),
				},
			}
		}

		item, ok := doc.Paths[route.Path]
		if !ok {
			item = &openapi3.PathItem{}
			doc.Paths[route.Path] = item
		}
		op := &openapi3.Operation{
			Description: route.Doc.Summary,
			Tags:        []string{info.Title},
			Responses:   responses,
		}
		switch strings.ToUpper(route.Method) {
		case http.MethodPost:
			item.Post = op
		case http.MethodPut:
			item.Put = op
		case http.MethodDelete:
			item.Delete = op
		case http.MethodPatch:
			item.Patch = op
		default:
			item.Get = op
		}
	}

	return doc, nil
}

func schemaFor(sample any) (*openapi3.SchemaRef, error) {
	if sample == nil {
		return openapi3.NewStringSchema().NewRef(), nil
	}
	return openapi3gen.NewSchemaRefForValue(sample, openapi3.Schemas{}, openapi3gen.UseAllExportedFields())
}

type encoder interface {
	Encode(v any) error
}

// OpenAPIHandler serves the given document as yaml, or as json if requested by the Accept header
func OpenAPIHandler(doc openapi3.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var marshaler encoder
		switch r.Header.Get("Accept") {
		case ContentTypeJSON:
			w.Header().Add("Content-Type", ContentTypeJSON)
			marshaler = json.NewEncoder(w)
		default:
			w.Header().Add("Content-Type", "text/yaml")
			marshaler = yaml.NewEncoder(w)
		}

		if err := marshaler.Encode(doc); err != nil {
			log.Error("Failed to marshal openapi", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			_, err = w.Write([]byte(http.StatusText(http.StatusInternalServerError)))
			if err != nil {
				log.Error("Failed to write response", "error", err)
			}
		}
	}
}
