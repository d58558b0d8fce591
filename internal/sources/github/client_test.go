package github

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/beadsync/internal/sources"
	"github.com/agentstation/beadsync/internal/sources/testhelper"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

func newTestClient(t *testing.T, server *testhelper.Server) *Client {
	t.Helper()
	c, err := NewClient(sources.Config{
		Values: map[string]string{
			EnvRepository: "acme/widgets",
			EnvToken:      "ghp_test",
			EnvAPIURL:     server.URL,
		},
		HTTPClient: server.Client(),
		RateLimit:  -1,
	})
	require.NoError(t, err)
	return c
}

func TestFetchSkipsPullRequests(t *testing.T) {
	server := testhelper.NewServer(t, func(r *http.Request) (int, string) {
		if r.URL.Path != "/repos/acme/widgets/issues" {
			return http.StatusNotFound, ""
		}
		return http.StatusOK, "issues_page1.json"
	})
	c := newTestClient(t, server)

	got, err := c.Fetch(context.Background(), issues.Query{OpenOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Len(t, server.Requests, 1, "a short page ends pagination")
	req := server.Requests[0]
	assert.Equal(t, "Bearer ghp_test", req.Header.Get("Authorization"))
	assert.Equal(t, "open", req.URL.Query().Get("state"))
	assert.Equal(t, "100", req.URL.Query().Get("per_page"))
	assert.Equal(t, "1", req.URL.Query().Get("page"))

	bug := got[0]
	assert.Equal(t, "gh-42", bug.SourceKey)
	assert.Equal(t, "Crash when config file is empty", bug.Title)
	assert.Equal(t, "open", bug.Status)
	assert.Equal(t, issues.TypeBug, bug.Type)
	assert.Equal(t, "octocat", bug.Assignee)
	assert.Nil(t, bug.Priority, "GitHub has no native priority")
	assert.Equal(t, []string{"bug", "cli", "gh-42", "synced"}, bug.Labels)
	assert.NoError(t, bug.Validate())

	feature := got[1]
	assert.Equal(t, "gh-44", feature.SourceKey)
	assert.Equal(t, issues.TypeFeature, feature.Type)
	assert.Empty(t, feature.Description)
}

func TestFetchForbidden(t *testing.T) {
	server := testhelper.NewServer(t, func(*http.Request) (int, string) {
		return http.StatusForbidden, "error_403.json"
	})
	c := newTestClient(t, server)

	_, err := c.Fetch(context.Background(), issues.Query{})
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestNewClientRepository(t *testing.T) {
	for _, repo := range []string{"", "acme", "acme/", "/widgets", "a/b/c"} {
		_, err := NewClient(sources.Config{Values: map[string]string{EnvRepository: repo}})
		assert.True(t, errors.IsConfigError(err), repo)
	}

	c, err := NewClient(sources.Config{Values: map[string]string{EnvRepository: "acme/widgets"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, c.baseURL)
	assert.Equal(t, issues.SourceGitHub, c.ID())
}
