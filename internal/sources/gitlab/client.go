// Package gitlab provides a source adapter for GitLab issues, on gitlab.com
// or a self-managed instance.
package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
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
	EnvToken     = "GITLAB_TOKEN"
	EnvProjectID = "GITLAB_PROJECT_ID"
	EnvURL       = "GITLAB_URL"
)

// DefaultURL is the hosted GitLab instance.
const DefaultURL = "https://gitlab.com"

// tokenHeader carries personal and project access tokens.
const tokenHeader = "PRIVATE-TOKEN"

func init() {
	sources.Register(issues.SourceGitLab, func(cfg sources.Config) (sources.Source, error) {
		return NewClient(cfg)
	})
}

// Client fetches issues of one GitLab project.
type Client struct {
	baseURL   string
	projectID string
	transport *transport.Client
}

// NewClient creates a GitLab adapter. GITLAB_PROJECT_ID is the numeric id
// or the full "group/project" path.
func NewClient(cfg sources.Config) (*Client, error) {
	projectID := cfg.Get(EnvProjectID, "")
	if projectID == "" {
		return nil, &errors.ConfigError{
			Component: issues.SourceGitLab.String(),
			Message:   "project id is required",
			Missing:   []string{EnvProjectID},
		}
	}

	opts := []transport.Option{transport.WithHTTPClient(cfg.HTTPClient)}
	if cfg.RateLimit != 0 {
		opts = append(opts, transport.WithRateLimit(cfg.RateLimit, constants.BurstSize))
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.Get(EnvURL, DefaultURL), "/"),
		projectID: projectID,
		transport: transport.New(issues.SourceGitLab.String(), &transport.HeaderAuth{Header: tokenHeader}, cfg.Get(EnvToken, ""), opts...),
	}, nil
}

// ID implements sources.Source.
func (c *Client) ID() issues.Source {
	return issues.SourceGitLab
}

type apiIssue struct {
	IID         int       `json:"iid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       string    `json:"state"`
	Labels      []string  `json:"labels"`
	Assignees   []apiUser `json:"assignees"`
	Assignee    *apiUser  `json:"assignee"`
}

type apiUser struct {
	Username string `json:"username"`
}

// Fetch lists project issues, following the X-Next-Page header.
func (c *Client) Fetch(ctx context.Context, query issues.Query) ([]issues.CanonicalIssue, error) {
	logger := logging.FromContext(ctx)
	logger.Debug().Str("project", c.projectID).Msg("Listing GitLab issues")

	var out []issues.CanonicalIssue
	page := "1"
	for n := 0; n < constants.MaxPages; n++ {
		var items []apiIssue
		resp, err := c.transport.GetJSON(ctx, c.issuesURL(query, page), &items)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			out = append(out, convertToIssue(item))
		}

		page = strings.TrimSpace(resp.Header.Get("X-Next-Page"))
		if page == "" || len(items) == 0 {
			return out, nil
		}
	}

	logger.Warn().Int("pages", constants.MaxPages).Msg("Stopped paginating GitLab issues at page limit")
	return out, nil
}

func (c *Client) issuesURL(query issues.Query, page string) string {
	params := url.Values{}
	if query.OpenOnly {
		params.Set("state", "opened")
	}
	if query.Component != "" {
		params.Set("labels", query.Component)
	}
	params.Set("per_page", strconv.Itoa(constants.DefaultPageSize))
	params.Set("page", page)
	return fmt.Sprintf("%s/api/v4/projects/%s/issues?%s", c.baseURL, url.PathEscape(c.projectID), params.Encode())
}

func convertToIssue(item apiIssue) issues.CanonicalIssue {
	ci := issues.CanonicalIssue{
		SourceKey:   issues.GitLabKeyPrefix + strconv.Itoa(item.IID),
		Title:       item.Title,
		Description: item.Description,
		Status:      item.State,
		Type:        issues.InferType(item.Labels),
		Labels:      item.Labels,
		Source:      issues.SourceGitLab,
	}
	switch {
	case len(item.Assignees) > 0:
		ci.Assignee = item.Assignees[0].Username
	case item.Assignee != nil:
		ci.Assignee = item.Assignee.Username
	}
	return ci.Normalize()
}
