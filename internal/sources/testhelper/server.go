// Package testhelper runs fake trackers for adapter tests. Responses are
// recorded tracker payloads kept under the calling package's testdata/.
package testhelper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// Route picks the response for a request: a status and the testdata file
// to send as the JSON body. An empty filename sends no body.
type Route func(r *http.Request) (status int, filename string)

// Server is a fake tracker that records the requests it receives.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	Requests []*http.Request

	headers func(r *http.Request) http.Header
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithHeaders sets extra response headers per request, such as GitHub's
// Link pagination header.
func WithHeaders(fn func(r *http.Request) http.Header) ServerOption {
	return func(s *Server) { s.headers = fn }
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t testing.TB, route Route, opts ...ServerOption) *Server {
	t.Helper()
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.Requests = append(s.Requests, r.Clone(r.Context()))
		s.mu.Unlock()

		if s.headers != nil {
			for k, vs := range s.headers(r) {
				w.Header()[k] = append(w.Header()[k], vs...)
			}
		}
		status, filename := route(r)
		if filename == "" {
			w.WriteHeader(status)
			return
		}
		body, err := os.ReadFile(filepath.Join("testdata", filename)) //nolint:gosec // fixed test paths
		if err != nil {
			t.Errorf("testdata %s: %v", filename, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}
