// Package jira provides a source adapter for Atlassian Jira Cloud.
//
// Issues are fetched with a JQL search over the REST v3 API, authenticated
// with the account email and an API token. Priority and issue type names are
// mapped to the canonical scales here and nowhere else.
package jira

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/beadsync/internal/sources"
	"github.com/agentstation/beadsync/internal/transport"
	"github.com/agentstation/beadsync/pkg/constants"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/logging"
	"github.com/agentstation/beadsync/pkg/slug"
)

// Environment variables read by the adapter.
const (
	EnvHost       = "JIRA_HOST"
	EnvEmail      = "JIRA_EMAIL"
	EnvAPIToken   = "JIRA_API_TOKEN"
	EnvProjectKey = "JIRA_PROJECT_KEY"
	EnvComponent  = "JIRA_COMPONENT"
)

// searchPath is the JQL search endpoint.
const searchPath = "/rest/api/3/search"

// searchFields limits the response to what conversion needs.
var searchFields = []string{"summary", "description", "status", "priority", "issuetype", "assignee", "labels", "components"}

func init() {
	sources.Register(issues.SourceJira, func(cfg sources.Config) (sources.Source, error) {
		return NewClient(cfg)
	})
}

// Client fetches issues from one Jira site.
type Client struct {
	baseURL   string
	project   string
	component string
	transport *transport.Client
}

// NewClient creates a Jira adapter from its configuration.
func NewClient(cfg sources.Config) (*Client, error) {
	host := cfg.Get(EnvHost, "")
	email := cfg.Get(EnvEmail, "")
	token := cfg.Get(EnvAPIToken, "")
	var missing []string
	for key, v := range map[string]string{EnvHost: host, EnvEmail: email, EnvAPIToken: token} {
		if v == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, &errors.ConfigError{
			Component: issues.SourceJira.String(),
			Message:   "host, email and API token are required",
			Missing:   missing,
		}
	}

	opts := []transport.Option{transport.WithHTTPClient(cfg.HTTPClient)}
	if cfg.RateLimit != 0 {
		opts = append(opts, transport.WithRateLimit(cfg.RateLimit, constants.BurstSize))
	}

	return &Client{
		baseURL:   baseURL(host),
		project:   cfg.Get(EnvProjectKey, ""),
		component: cfg.Get(EnvComponent, ""),
		transport: transport.New(issues.SourceJira.String(), &transport.BasicAuth{Username: email}, token, opts...),
	}, nil
}

// baseURL accepts a bare host ("acme.atlassian.net") or a full URL.
func baseURL(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}

// ID implements sources.Source.
func (c *Client) ID() issues.Source {
	return issues.SourceJira
}

// searchResponse is one page of /rest/api/3/search.
type searchResponse struct {
	StartAt    int        `json:"startAt"`
	MaxResults int        `json:"maxResults"`
	Total      int        `json:"total"`
	Issues     []apiIssue `json:"issues"`
}

type apiIssue struct {
	Key    string    `json:"key"`
	Fields apiFields `json:"fields"`
}

type apiFields struct {
	Summary     string      `json:"summary"`
	Description description `json:"description"`
	Status      *named      `json:"status"`
	Priority    *named      `json:"priority"`
	IssueType   *named      `json:"issuetype"`
	Assignee    *user       `json:"assignee"`
	Labels      []string    `json:"labels"`
	Components  []named     `json:"components"`
}

type named struct {
	Name string `json:"name"`
}

type user struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// Fetch pages through the JQL search until every matching issue is read.
func (c *Client) Fetch(ctx context.Context, query issues.Query) ([]issues.CanonicalIssue, error) {
	if query.ProjectKey == "" {
		query.ProjectKey = c.project
	}
	if query.Component == "" {
		query.Component = c.component
	}
	if query.ProjectKey == "" {
		return nil, &errors.ConfigError{Component: issues.SourceJira.String(), Message: "project key is required", Missing: []string{EnvProjectKey}}
	}

	jql := BuildJQL(query)
	logger := logging.FromContext(ctx)
	logger.Debug().Str("jql", jql).Msg("Searching Jira")

	var out []issues.CanonicalIssue
	startAt := 0
	for page := 0; page < constants.MaxPages; page++ {
		var resp searchResponse
		if _, err := c.transport.GetJSON(ctx, c.searchURL(jql, startAt), &resp); err != nil {
			return nil, err
		}
		for _, ai := range resp.Issues {
			out = append(out, c.convertToIssue(ai))
		}

		startAt += len(resp.Issues)
		if len(resp.Issues) == 0 || startAt >= resp.Total {
			return out, nil
		}
	}

	logger.Warn().Int("pages", constants.MaxPages).Msg("Stopped paginating Jira search at page limit")
	return out, nil
}

func (c *Client) searchURL(jql string, startAt int) string {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("startAt", strconv.Itoa(startAt))
	params.Set("maxResults", strconv.Itoa(constants.DefaultPageSize))
	params.Set("fields", strings.Join(searchFields, ","))
	return c.baseURL + searchPath + "?" + params.Encode()
}

// BuildJQL renders the search for query. Open-only queries exclude the
// Done, Closed and Resolved statuses.
func BuildJQL(query issues.Query) string {
	clauses := []string{"project = " + query.ProjectKey}
	if query.Component != "" {
		clauses = append(clauses, fmt.Sprintf("component = %q", query.Component))
	}
	if query.OpenOnly {
		clauses = append(clauses, "status NOT IN (Done, Closed, Resolved)")
	}
	return strings.Join(clauses, " AND ")
}

// convertToIssue maps a Jira issue onto the canonical model.
func (c *Client) convertToIssue(ai apiIssue) issues.CanonicalIssue {
	f := ai.Fields

	labels := append([]string(nil), f.Labels...)
	for _, comp := range f.Components {
		if s := slug.Slugify(comp.Name, 0); s != "" {
			labels = append(labels, issues.ComponentLabelPrefix+s)
		}
	}

	ci := issues.CanonicalIssue{
		SourceKey:   ai.Key,
		Title:       f.Summary,
		Description: f.Description.Text,
		Priority:    issues.PriorityPtr(MapPriority(nameOf(f.Priority))),
		Type:        MapType(nameOf(f.IssueType)),
		Labels:      labels,
		Source:      issues.SourceJira,
	}
	if f.Status != nil {
		ci.Status = f.Status.Name
	}
	if f.Assignee != nil {
		ci.Assignee = f.Assignee.DisplayName
		if ci.Assignee == "" {
			ci.Assignee = f.Assignee.EmailAddress
		}
	}
	return ci.Normalize()
}

func nameOf(n *named) string {
	if n == nil {
		return ""
	}
	return n.Name
}

var priorities = map[string]issues.Priority{
	"Highest": 0,
	"High":    1,
	"Medium":  2,
	"Low":     3,
	"Lowest":  4,
}

// MapPriority converts a Jira priority name. Missing and unknown names map
// to the default priority.
func MapPriority(name string) issues.Priority {
	if p, ok := priorities[name]; ok {
		return p
	}
	return issues.DefaultPriority
}

// MapType converts a Jira issue type name.
func MapType(name string) issues.IssueType {
	switch name {
	case "Bug":
		return issues.TypeBug
	case "Story", "Feature":
		return issues.TypeFeature
	case "Epic":
		return issues.TypeEpic
	default:
		return issues.TypeTask
	}
}
