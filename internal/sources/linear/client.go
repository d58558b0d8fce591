// Package linear provides a source adapter for Linear, queried over its
// GraphQL API.
package linear

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/beadsync/internal/sources"
	"github.com/agentstation/beadsync/internal/transport"
	"github.com/agentstation/beadsync/pkg/constants"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/logging"
)

// Environment variables read by the adapter.
const (
	EnvAPIKey = "LINEAR_API_KEY"
	EnvTeamID = "LINEAR_TEAM_ID"
	EnvAPIURL = "LINEAR_API_URL"
)

// DefaultAPIURL is the Linear API host.
const DefaultAPIURL = "https://api.linear.app"

// openStateTypes are the workflow state types that count as open.
var openStateTypes = []string{"backlog", "unstarted", "started"}

const issuesQuery = `query TeamIssues($teamId: String!, $first: Int!, $after: String, $filter: IssueFilter) {
  team(id: $teamId) {
    issues(first: $first, after: $after, filter: $filter) {
      nodes {
        identifier
        title
        description
        state { name type }
        labels { nodes { name } }
        assignee { name displayName }
      }
      pageInfo { hasNextPage endCursor }
    }
  }
}`

func init() {
	sources.Register(issues.SourceLinear, func(cfg sources.Config) (sources.Source, error) {
		return NewClient(cfg)
	})
}

// Client fetches issues of one Linear team.
type Client struct {
	endpoint  string
	teamID    string
	transport *transport.Client
}

// NewClient creates a Linear adapter. Personal API keys are sent verbatim
// in the Authorization header, without a Bearer prefix.
func NewClient(cfg sources.Config) (*Client, error) {
	opts := []transport.Option{transport.WithHTTPClient(cfg.HTTPClient)}
	if cfg.RateLimit != 0 {
		opts = append(opts, transport.WithRateLimit(cfg.RateLimit, constants.BurstSize))
	}

	return &Client{
		endpoint:  strings.TrimRight(cfg.Get(EnvAPIURL, DefaultAPIURL), "/") + "/graphql",
		teamID:    cfg.Get(EnvTeamID, ""),
		transport: transport.New(issues.SourceLinear.String(), &transport.HeaderAuth{Header: "Authorization"}, cfg.Get(EnvAPIKey, ""), opts...),
	}, nil
}

// ID implements sources.Source.
func (c *Client) ID() issues.Source {
	return issues.SourceLinear
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   graphQLData    `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type graphQLData struct {
	Team *team `json:"team"`
}

type team struct {
	Issues issueConnection `json:"issues"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type issueConnection struct {
	Nodes    []apiIssue `json:"nodes"`
	PageInfo pageInfo   `json:"pageInfo"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type apiIssue struct {
	Identifier  string          `json:"identifier"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	State       *workflowState  `json:"state"`
	Labels      labelConnection `json:"labels"`
	Assignee    *apiUser        `json:"assignee"`
}

type workflowState struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type labelConnection struct {
	Nodes []label `json:"nodes"`
}

type label struct {
	Name string `json:"name"`
}

type apiUser struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Fetch pages through the team's issues with the connection cursor. A query
// project key overrides the configured team id.
func (c *Client) Fetch(ctx context.Context, query issues.Query) ([]issues.CanonicalIssue, error) {
	teamID := query.ProjectKey
	if teamID == "" {
		teamID = c.teamID
	}
	if teamID == "" {
		return nil, &errors.ConfigError{Component: issues.SourceLinear.String(), Message: "team id is required", Missing: []string{EnvTeamID}}
	}

	logger := logging.FromContext(ctx)
	logger.Debug().Str("team", teamID).Msg("Querying Linear issues")

	vars := map[string]any{
		"teamId": teamID,
		"first":  constants.DefaultPageSize,
	}
	if query.OpenOnly {
		vars["filter"] = map[string]any{
			"state": map[string]any{"type": map[string]any{"in": openStateTypes}},
		}
	}

	var out []issues.CanonicalIssue
	for page := 0; page < constants.MaxPages; page++ {
		conn, err := c.page(ctx, vars)
		if err != nil {
			return nil, err
		}
		for _, node := range conn.Nodes {
			out = append(out, convertToIssue(node))
		}
		if !conn.PageInfo.HasNextPage || conn.PageInfo.EndCursor == "" {
			return out, nil
		}
		vars["after"] = conn.PageInfo.EndCursor
	}

	logger.Warn().Int("pages", constants.MaxPages).Msg("Stopped paginating Linear issues at page limit")
	return out, nil
}

func (c *Client) page(ctx context.Context, vars map[string]any) (*issueConnection, error) {
	resp, err := c.transport.PostJSON(ctx, c.endpoint, graphQLRequest{Query: issuesQuery, Variables: vars})
	if err != nil {
		return nil, err
	}

	var result graphQLResponse
	if err := transport.DecodeResponse(resp, issues.SourceLinear.String(), &result); err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, &errors.APIError{
			Source:     issues.SourceLinear.String(),
			StatusCode: resp.StatusCode,
			Endpoint:   c.endpoint,
			Message:    strings.Join(msgs, "; "),
		}
	}
	if result.Data.Team == nil {
		return nil, &errors.NotFoundError{Resource: "linear team", ID: fmt.Sprint(vars["teamId"])}
	}
	return &result.Data.Team.Issues, nil
}

func convertToIssue(node apiIssue) issues.CanonicalIssue {
	labels := make([]string, 0, len(node.Labels.Nodes))
	for _, l := range node.Labels.Nodes {
		labels = append(labels, l.Name)
	}

	ci := issues.CanonicalIssue{
		SourceKey:   node.Identifier,
		Title:       node.Title,
		Description: node.Description,
		Type:        issues.InferType(labels),
		Labels:      labels,
		Source:      issues.SourceLinear,
	}
	if node.State != nil {
		ci.Status = node.State.Name
	}
	if node.Assignee != nil {
		ci.Assignee = node.Assignee.DisplayName
		if ci.Assignee == "" {
			ci.Assignee = node.Assignee.Name
		}
	}
	return ci.Normalize()
}
