// Package github provides a source adapter for GitHub Issues.
package github

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
	EnvRepository = "GITHUB_REPOSITORY"
	EnvToken      = "GITHUB_TOKEN"
	EnvAPIURL     = "GITHUB_API_URL"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

func init() {
	sources.Register(issues.SourceGitHub, func(cfg sources.Config) (sources.Source, error) {
		return NewClient(cfg)
	})
}

// Client fetches open issues of one repository.
type Client struct {
	baseURL   string
	owner     string
	repo      string
	transport *transport.Client
}

// NewClient creates a GitHub adapter. GITHUB_REPOSITORY is "owner/repo".
func NewClient(cfg sources.Config) (*Client, error) {
	repository := cfg.Get(EnvRepository, "")
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, &errors.ConfigError{
			Component: issues.SourceGitHub.String(),
			Message:   fmt.Sprintf("%s must be owner/repo, got %q", EnvRepository, repository),
			Missing:   missingIf(repository == "", EnvRepository),
		}
	}

	opts := []transport.Option{transport.WithHTTPClient(cfg.HTTPClient)}
	if cfg.RateLimit != 0 {
		opts = append(opts, transport.WithRateLimit(cfg.RateLimit, constants.BurstSize))
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.Get(EnvAPIURL, DefaultAPIURL), "/"),
		owner:     owner,
		repo:      repo,
		transport: transport.New(issues.SourceGitHub.String(), &transport.BearerAuth{}, cfg.Get(EnvToken, ""), opts...),
	}, nil
}

func missingIf(cond bool, key string) []string {
	if cond {
		return []string{key}
	}
	return nil
}

// ID implements sources.Source.
func (c *Client) ID() issues.Source {
	return issues.SourceGitHub
}

type apiIssue struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	State       string     `json:"state"`
	Labels      []apiLabel `json:"labels"`
	Assignees   []apiUser  `json:"assignees"`
	PullRequest *struct{}  `json:"pull_request"`
}

type apiLabel struct {
	Name string `json:"name"`
}

type apiUser struct {
	Login string `json:"login"`
}

// Fetch lists open issues page by page. Pull requests, which the issues
// endpoint also returns, are skipped. Project and component scoping do not
// apply to GitHub.
func (c *Client) Fetch(ctx context.Context, query issues.Query) ([]issues.CanonicalIssue, error) {
	logger := logging.FromContext(ctx)
	logger.Debug().Str("repository", c.owner+"/"+c.repo).Msg("Listing GitHub issues")

	var out []issues.CanonicalIssue
	for page := 1; page <= constants.MaxPages; page++ {
		var items []apiIssue
		if _, err := c.transport.GetJSON(ctx, c.issuesURL(query, page), &items); err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.PullRequest != nil {
				continue
			}
			out = append(out, convertToIssue(item))
		}
		if len(items) < constants.DefaultPageSize {
			return out, nil
		}
	}

	logger.Warn().Int("pages", constants.MaxPages).Msg("Stopped paginating GitHub issues at page limit")
	return out, nil
}

func (c *Client) issuesURL(query issues.Query, page int) string {
	state := "all"
	if query.OpenOnly {
		state = "open"
	}
	params := url.Values{}
	params.Set("state", state)
	params.Set("per_page", strconv.Itoa(constants.DefaultPageSize))
	params.Set("page", strconv.Itoa(page))
	return fmt.Sprintf("%s/repos/%s/%s/issues?%s", c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), params.Encode())
}

func convertToIssue(item apiIssue) issues.CanonicalIssue {
	labels := make([]string, 0, len(item.Labels))
	for _, l := range item.Labels {
		labels = append(labels, l.Name)
	}

	ci := issues.CanonicalIssue{
		SourceKey:   issues.GitHubKeyPrefix + strconv.Itoa(item.Number),
		Title:       item.Title,
		Description: item.Body,
		Status:      item.State,
		Type:        issues.InferType(labels),
		Labels:      labels,
		Source:      issues.SourceGitHub,
	}
	if len(item.Assignees) > 0 {
		ci.Assignee = item.Assignees[0].Login
	}
	return ci.Normalize()
}
