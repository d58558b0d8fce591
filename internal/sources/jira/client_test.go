package jira

import (
	"context"
	"encoding/json"
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
			EnvHost:       server.URL,
			EnvEmail:      "me@example.com",
			EnvAPIToken:   "tok",
			EnvProjectKey: "PROJ",
		},
		HTTPClient: server.Client(),
		RateLimit:  -1,
	})
	require.NoError(t, err)
	return c
}

func TestFetchPaginatesAndConverts(t *testing.T) {
	server := testhelper.NewServer(t, func(r *http.Request) (int, string) {
		if r.URL.Path != searchPath {
			return http.StatusNotFound, ""
		}
		if r.URL.Query().Get("startAt") == "2" {
			return http.StatusOK, "search_page2.json"
		}
		return http.StatusOK, "search_page1.json"
	})
	c := newTestClient(t, server)

	got, err := c.Fetch(context.Background(), issues.Query{OpenOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Len(t, server.Requests, 2)
	first := server.Requests[0]
	assert.Equal(t, "project = PROJ AND status NOT IN (Done, Closed, Resolved)", first.URL.Query().Get("jql"))
	assert.Equal(t, "100", first.URL.Query().Get("maxResults"))
	user, pass, ok := first.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "me@example.com", user)
	assert.Equal(t, "tok", pass)

	bug := got[0]
	assert.Equal(t, "PROJ-1", bug.SourceKey)
	assert.Equal(t, "Login fails on Safari", bug.Title)
	assert.Equal(t, "Steps to reproduce:\n\n- open the login page\n- submit", bug.Description)
	assert.Equal(t, "In Progress", bug.Status)
	assert.Equal(t, issues.Priority(1), issues.PriorityOf(bug.Priority))
	assert.Equal(t, issues.TypeBug, bug.Type)
	assert.Equal(t, "Ada Lovelace", bug.Assignee)
	assert.Equal(t, []string{"PROJ-1", "component-web-app", "frontend", "synced"}, bug.Labels)
	assert.Equal(t, issues.SourceJira, bug.Source)
	assert.NoError(t, bug.Validate())

	story := got[1]
	assert.Equal(t, issues.DefaultPriority, issues.PriorityOf(story.Priority), "unknown priority names map to the default")
	assert.Equal(t, issues.TypeFeature, story.Type)
	assert.Empty(t, story.Description)
	assert.Empty(t, story.Assignee)
	assert.Equal(t, []string{"PROJ-2", "synced"}, story.Labels)

	epic := got[2]
	assert.Equal(t, issues.TypeEpic, epic.Type)
	assert.Equal(t, "Plain v2 description", epic.Description)
	assert.Equal(t, issues.DefaultPriority, issues.PriorityOf(epic.Priority))
}

func TestFetchUnauthorized(t *testing.T) {
	server := testhelper.NewServer(t, func(*http.Request) (int, string) {
		return http.StatusUnauthorized, "error_401.json"
	})
	c := newTestClient(t, server)

	_, err := c.Fetch(context.Background(), issues.Query{})
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Client must be authenticated")
}

func TestFetchRequiresProject(t *testing.T) {
	c, err := NewClient(sources.Config{Values: map[string]string{
		EnvHost: "acme.atlassian.net", EnvEmail: "me@example.com", EnvAPIToken: "tok",
	}})
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), issues.Query{})
	assert.True(t, errors.IsConfigError(err))
}

func TestNewClientMissingCredentials(t *testing.T) {
	_, err := NewClient(sources.Config{Values: map[string]string{EnvHost: "acme.atlassian.net"}})
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{EnvAPIToken, EnvEmail}, cfgErr.Missing)
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://acme.atlassian.net", baseURL("acme.atlassian.net"))
	assert.Equal(t, "https://acme.atlassian.net", baseURL("https://acme.atlassian.net/"))
	assert.Equal(t, "http://127.0.0.1:8080", baseURL("http://127.0.0.1:8080"))
}

func TestBuildJQL(t *testing.T) {
	tests := []struct {
		name  string
		query issues.Query
		want  string
	}{
		{"project only", issues.Query{ProjectKey: "PROJ"}, "project = PROJ"},
		{"open only", issues.Query{ProjectKey: "PROJ", OpenOnly: true}, "project = PROJ AND status NOT IN (Done, Closed, Resolved)"},
		{"component", issues.Query{ProjectKey: "PROJ", Component: "Web App"}, `project = PROJ AND component = "Web App"`},
		{"quoted component", issues.Query{ProjectKey: "PROJ", Component: `a "b"`}, `project = PROJ AND component = "a \"b\""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildJQL(tt.query))
		})
	}
}

func TestMapPriority(t *testing.T) {
	for name, want := range map[string]issues.Priority{
		"Highest": 0, "High": 1, "Medium": 2, "Low": 3, "Lowest": 4, "": 2, "Critical": 2,
	} {
		assert.Equal(t, want, MapPriority(name), name)
	}
}

func TestDescriptionADF(t *testing.T) {
	raw := `{"type":"doc","content":[
		{"type":"heading","content":[{"type":"text","text":"Context"}]},
		{"type":"paragraph","content":[{"type":"text","text":"ping "},{"type":"mention","attrs":{"text":"@ada"}},{"type":"hardBreak"},{"type":"text","text":"thanks"}]},
		{"type":"codeBlock","content":[{"type":"text","text":"go test ./..."}]}
	]}`
	var d description
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	assert.Equal(t, "Context\n\nping @ada\nthanks\n\n```\ngo test ./...\n```", d.Text)
}
