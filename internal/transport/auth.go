package transport

import (
	"net/http"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, secret string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth implements Bearer token authentication (GitHub).
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, secret string) {
	if secret == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+secret)
}

// BasicAuth implements HTTP basic authentication with a fixed user (Jira
// Cloud: account email plus API token).
type BasicAuth struct {
	Username string
}

// Apply implements the Authenticator interface for BasicAuth.
func (a *BasicAuth) Apply(req *http.Request, secret string) {
	req.SetBasicAuth(a.Username, secret)
}

// HeaderAuth sends the secret verbatim in a custom header (GitLab
// PRIVATE-TOKEN, Linear Authorization).
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, secret string) {
	req.Header.Set(a.Header, secret)
}
