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
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/caas-team/netpolicy-demo/internal/httpclient"
)

func TestProbe_HTTP(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	endpoint := "https://httpbin.org/json"

	tests := []struct {
		name          string
		url           string
		httpResponder httpmock.Responder
		wantSucceeded bool
		wantBody      string
		wantErr       string
	}{
		{
			name:          "status 200",
			url:           endpoint,
			httpResponder: httpmock.NewStringResponder(http.StatusOK, `{"slideshow":{}}`),
			wantSucceeded: true,
			wantBody:      `{"slideshow":{}}`,
		},
		{
			name:          "status 204 without body",
			url:           endpoint,
			httpResponder: httpmock.NewStringResponder(http.StatusNoContent, ""),
			wantSucceeded: true,
			wantBody:      "",
		},
		{
			name:          "status not 2xx",
			url:           endpoint,
			httpResponder: httpmock.NewStringResponder(http.StatusForbidden, "denied"),
			wantSucceeded: false,
			wantErr:       "request failed, status is 403",
		},
		{
			name:          "transport error",
			url:           endpoint,
			httpResponder: httpmock.NewErrorResponder(errors.New("connection refused")),
			wantSucceeded: false,
			wantErr:       `Get "https://httpbin.org/json": connection refused`,
		},
		{
			name:          "empty url",
			url:           "",
			httpResponder: httpmock.NewStringResponder(http.StatusOK, ""),
			wantSucceeded: false,
			wantErr:       ErrEmptyTarget.Error(),
		},
		{
			name:          "url without scheme",
			url:           "httpbin.org/json",
			httpResponder: httpmock.NewStringResponder(http.StatusOK, ""),
			wantSucceeded: false,
			wantErr:       ErrInvalidTarget{Target: "httpbin.org/json", Reason: "url must start with 'http://' or 'https://'"}.Error(),
		},
	}
	for _, tt := range tests {
		httpmock.RegisterResponder(http.MethodGet, endpoint, tt.httpResponder)
		t.Run(tt.name, func(t *testing.T) {
			p := New(WithClient(&http.Client{}))

			got := p.Probe(context.Background(), HTTP(tt.url, time.Second))

			assert.Equal(t, tt.wantSucceeded, got.Succeeded)
			assert.Equal(t, KindHTTP, got.Kind)
			assert.Equal(t, tt.url, got.Target)
			if tt.wantSucceeded {
				assert.Empty(t, got.Error)
				assert.Equal(t, tt.wantBody, string(got.Body()))
				assert.NotNil(t, got.Payload)
			} else {
				assert.Contains(t, got.Error, tt.wantErr)
				assert.Nil(t, got.Payload)
			}
		})
	}
}

func TestProbe_HTTP_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	p := New(WithClient(&http.Client{Transport: &http.Transport{}}))

	start := time.Now()
	got := p.Probe(context.Background(), HTTP(srv.URL, 100*time.Millisecond))

	assert.False(t, got.Succeeded)
	assert.NotEmpty(t, got.Error)
	assert.Nil(t, got.Payload)
	assert.Less(t, time.Since(start), 3*time.Second, "probe was not bounded by its timeout")
}

func TestProbe_HTTP_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	p := New(WithClient(&http.Client{Transport: &http.Transport{}}))
	got := p.Probe(context.Background(), HTTP(addr+"/api/data", time.Second))

	assert.False(t, got.Succeeded)
	assert.Contains(t, got.Error, "connect")
	assert.Nil(t, got.Payload)
}

func TestProbe_HTTP_LiveServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"hi"}`))
	}))
	defer srv.Close()

	p := New(WithClient(srv.Client()))
	first := p.Probe(context.Background(), HTTP(srv.URL, time.Second))
	second := p.Probe(context.Background(), HTTP(srv.URL, time.Second))

	for _, got := range []Result{first, second} {
		assert.True(t, got.Succeeded)
		assert.Empty(t, got.Error)
		assert.JSONEq(t, `{"message":"hi"}`, string(got.Body()))
	}
	assert.Equal(t, first.Body(), second.Body())
}

func TestProbe_HTTP_ClientFromContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("from context"))
	}))
	defer srv.Close()

	ctx := httpclient.IntoContext(context.Background(), srv.Client())
	got := New().Probe(ctx, HTTP(srv.URL, time.Second))

	assert.True(t, got.Succeeded)
	assert.Equal(t, "from context", string(got.Body()))
}

func TestProbe_HTTP_BodySize(t *testing.T) {
	tests := []struct {
		name          string
		size          int
		wantSucceeded bool
		wantErr       string
	}{
		{name: "body at the limit", size: maxBodySize, wantSucceeded: true},
		{name: "body above the limit", size: 2 * maxBodySize, wantErr: ErrBodyTooLarge{Limit: maxBodySize}.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(strings.Repeat("a", tt.size)))
			}))
			defer srv.Close()

			got := New(WithClient(srv.Client())).Probe(context.Background(), HTTP(srv.URL, 5*time.Second))

			assert.Equal(t, tt.wantSucceeded, got.Succeeded)
			assert.Equal(t, tt.wantErr, got.Error)
			if tt.wantSucceeded {
				assert.Len(t, got.Body(), tt.size)
			} else {
				assert.Nil(t, got.Payload)
			}
		})
	}
}
