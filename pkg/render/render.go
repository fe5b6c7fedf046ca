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

// Package render turns probe outcomes into the HTML pages served by the demo services.
// Every function is a pure function of its input.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/url"
	"strings"

	"github.com/caas-team/netpolicy-demo/pkg/probe"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("pages").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.html"),
)

// BackendData is the part of the backend payload shown on the frontend.
type BackendData struct {
	Message string
	Source  string
}

// BackendLanding renders the landing page of the backend service.
func BackendLanding() string {
	return execute("backend_landing.html", nil)
}

// FrontendLanding renders the landing page of the frontend service.
func FrontendLanding() string {
	return execute("frontend_landing.html", nil)
}

// ExternalLanding renders the landing page of the external client service.
func ExternalLanding() string {
	return execute("external_landing.html", nil)
}

// BackendCall renders the outcome of the frontend's call to the backend.
// data is only shown if the probe succeeded.
func BackendCall(res probe.Result, data BackendData) string {
	return execute("backend_call.html", struct {
		Result probe.Result
		BackendData
	}{
		Result:      res,
		BackendData: data,
	})
}

// ExternalCall renders the outcome of an http probe against an external endpoint.
// A json body is pretty printed, any other body is shown as is.
func ExternalCall(res probe.Result) string {
	return execute("external_call.html", struct {
		Result probe.Result
		Host   string
		Body   string
	}{
		Result: res,
		Host:   hostOf(res.Target),
		Body:   prettyJSON(res.Body()),
	})
}

// DNS renders the outcome of a dns probe.
func DNS(res probe.Result) string {
	return execute("dns.html", struct {
		Result probe.Result
	}{
		Result: res,
	})
}

func execute(name string, data any) string {
	var buf bytes.Buffer
	// only fails on a broken template
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		panic(err)
	}
	return buf.String()
}

func prettyJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}

func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return target
	}
	return u.Hostname()
}
