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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	"github.com/caas-team/netpolicy-demo/pkg/api"
	"github.com/caas-team/netpolicy-demo/pkg/config"
	"github.com/caas-team/netpolicy-demo/pkg/services"
)

const testVersion = "v0.0.0-e2e"

// E2E runs a set of apps and asserts their http responses
type E2E struct {
	t       *testing.T
	apps    map[string]*app
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// WithService adds the service running with cfg
func (e *E2E) WithService(svc services.Service, cfg *config.Config) *E2E {
	e.apps[svc.Name()] = &app{svc: svc, cfg: cfg}
	return e
}

// URL returns the base url of the named app
func (e *E2E) URL(name string) string {
	e.t.Helper()
	a, ok := e.apps[name]
	if !ok {
		e.t.Fatalf("App %q is not part of the test", name)
	}
	return "http://127.0.0.1" + a.cfg.Api.ListeningAddress
}

// Run starts all apps. They stop when ctx is canceled; Wait blocks until then.
func (e *E2E) Run(ctx context.Context) *E2E {
	e.t.Helper()
	if e.isRunning() {
		e.t.Fatal("E2E.Run must be called once")
	}

	for name, a := range e.apps {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			if err := services.Run(ctx, a.cfg, a.svc, testVersion); err != nil {
				e.t.Errorf("App %s stopped with error: %v", name, err)
			}
		}()
	}

	e.mu.Lock()
	e.running = true
	e.mu.Unlock()
	return e
}

// Wait blocks until all apps are stopped
func (e *E2E) Wait() {
	e.wg.Wait()
}

// AwaitStartup waits until every app answers on its landing page
func (e *E2E) AwaitStartup(failureTimeout time.Duration) *E2E {
	e.t.Helper()
	if !e.isRunning() {
		e.t.Fatal("E2E.AwaitStartup must be called after E2E.Run")
	}

	const retryInterval = 50 * time.Millisecond
	for name := range e.apps {
		u := e.URL(name) + "/"
		start := time.Now()
		deadline := start.Add(failureTimeout)
		for {
			resp, err := get(context.Background(), u)
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					e.t.Logf("%s is ready after %v", u, time.Since(start))
					break
				}
			}
			if time.Now().After(deadline) {
				e.t.Fatalf("%s is not ready after %v: %v", u, failureTimeout, err)
			}
			<-time.After(retryInterval)
		}
	}
	return e
}

func (e *E2E) isRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// HttpAsserter asserts the response of a single GET request
type HttpAsserter struct {
	e2e      *E2E
	url      string
	contains []string
	schema   *openapi3.T
	router   routers.Router
}

// HttpAssertion creates a new assertion for a GET request against u
func (e *E2E) HttpAssertion(u string) *HttpAsserter {
	return &HttpAsserter{e2e: e, url: u}
}

// WithSchema validates the response against the openapi document served by the app
func (a *HttpAsserter) WithSchema() *HttpAsserter {
	a.e2e.t.Helper()
	schema, err := a.fetchSchema()
	if err != nil {
		a.e2e.t.Fatalf("Failed to fetch OpenAPI schema: %v", err)
	}

	router, err := gorillamux.NewRouter(schema)
	if err != nil {
		a.e2e.t.Fatalf("Failed to create router from OpenAPI schema: %v", err)
	}

	a.schema = schema
	a.router = router
	return a
}

// WithBodyContaining asserts that the body contains every given string
func (a *HttpAsserter) WithBodyContaining(s ...string) *HttpAsserter {
	a.contains = append(a.contains, s...)
	return a
}

// Assert performs the request and asserts the status code and every configured expectation
func (a *HttpAsserter) Assert(status int) {
	a.e2e.t.Helper()
	if !a.e2e.isRunning() {
		a.e2e.t.Fatal("HttpAsserter.Assert must be called after E2E.Run")
	}

	resp, err := get(context.Background(), a.url)
	if err != nil {
		a.e2e.t.Errorf("Failed to get %s: %v", a.url, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		a.e2e.t.Errorf("Failed to read response of %s: %v", a.url, err)
		return
	}

	if resp.StatusCode != status {
		a.e2e.t.Errorf("Want status code %d for %s, got %d: %s", status, a.url, resp.StatusCode, body)
		return
	}

	if a.router != nil {
		if err = a.assertSchema(resp, body); err != nil {
			a.e2e.t.Errorf("Response from %q does not match schema: %v", a.url, err)
		}
	}

	for _, s := range a.contains {
		if !bytes.Contains(body, []byte(s)) {
			a.e2e.t.Errorf("Response from %q does not contain %q: %s", a.url, s, body)
		}
	}
}

func (a *HttpAsserter) fetchSchema() (*openapi3.T, error) {
	ctx := context.Background()
	u, err := url.Parse(a.url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	u.Path = "/openapi"

	resp, err := get(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("failed to GET OpenAPI schema: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI schema: %w", err)
	}

	schema, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI schema: %w", err)
	}
	if err = schema.Validate(ctx); err != nil {
		return nil, fmt.Errorf("OpenAPI schema validation error: %w", err)
	}
	return schema, nil
}

func (a *HttpAsserter) assertSchema(resp *http.Response, body []byte) error {
	route, _, err := a.router.FindRoute(resp.Request)
	if err != nil {
		return fmt.Errorf("failed to find route: %w", err)
	}

	responseRef := route.Operation.Responses.Get(resp.StatusCode)
	if responseRef == nil || responseRef.Value == nil {
		return fmt.Errorf("no response defined in OpenAPI schema for status code %d", resp.StatusCode)
	}

	contentType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return fmt.Errorf("invalid content type: %w", err)
	}
	mediaType := responseRef.Value.Content.Get(contentType)
	if mediaType == nil {
		return fmt.Errorf("no media type defined in OpenAPI schema for Content-Type %q", contentType)
	}

	var v any = string(body)
	if contentType == api.ContentTypeJSON {
		if err = json.Unmarshal(body, &v); err != nil {
			return fmt.Errorf("failed to unmarshal response body: %w", err)
		}
	}

	if err = mediaType.Schema.Value.VisitJSON(v); err != nil {
		return fmt.Errorf("response body does not match schema: %w", err)
	}
	return nil
}

func get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}
