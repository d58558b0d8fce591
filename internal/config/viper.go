// Package config resolves per-tracker settings from the environment, .env
// files and the beadsync config file.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

// EnvVar describes one setting an adapter reads.
type EnvVar struct {
	Name        string // Environment variable name
	Required    bool   // Sync refuses to start without it
	Secret      bool   // Redacted in status output
	Pattern     string // Optional shape check
	Description string
}

var sourceEnv = map[issues.Source][]EnvVar{
	issues.SourceJira: {
		{Name: "JIRA_HOST", Required: true, Description: "Jira site, e.g. acme.atlassian.net"},
		{Name: "JIRA_EMAIL", Required: true, Description: "Account email for basic auth"},
		{Name: "JIRA_API_TOKEN", Required: true, Secret: true, Description: "Atlassian API token"},
		{Name: "JIRA_PROJECT_KEY", Required: true, Pattern: `^[A-Z][A-Z0-9_]*$`, Description: "Project to search"},
		{Name: "JIRA_COMPONENT", Description: "Restrict the search to one component"},
	},
	issues.SourceGitHub: {
		{Name: "GITHUB_REPOSITORY", Required: true, Pattern: `^[^/\s]+/[^/\s]+$`, Description: "Repository as owner/repo"},
		{Name: "GITHUB_TOKEN", Required: true, Secret: true, Description: "Token with issues read access"},
		{Name: "GITHUB_API_URL", Description: "API base URL for GitHub Enterprise"},
	},
	issues.SourceGitLab: {
		{Name: "GITLAB_TOKEN", Required: true, Secret: true, Description: "Personal or project access token"},
		{Name: "GITLAB_PROJECT_ID", Required: true, Description: "Numeric project id or group/project path"},
		{Name: "GITLAB_URL", Description: "Instance URL for self-managed GitLab"},
	},
	issues.SourceLinear: {
		{Name: "LINEAR_API_KEY", Required: true, Secret: true, Description: "Personal API key"},
		{Name: "LINEAR_TEAM_ID", Required: true, Description: "Team whose issues are synced"},
		{Name: "LINEAR_API_URL", Description: "API base URL override"},
	},
	issues.SourceExample: nil,
}

// EnvVars returns the settings source reads, required ones first.
func EnvVars(source issues.Source) []EnvVar {
	return append([]EnvVar(nil), sourceEnv[source]...)
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return strings.TrimSpace(osValue)
	}
	return strings.TrimSpace(viperValue)
}

// Resolve collects the settings for source. Every missing required variable
// is reported in a single ConfigError so users can fix them in one pass.
// No network access happens here.
func Resolve(source issues.Source) (map[string]string, error) {
	if !source.Valid() {
		return nil, &errors.ConfigError{Component: "source", Message: fmt.Sprintf("unknown source %q", source)}
	}

	values := make(map[string]string)
	var missing []string
	for _, v := range sourceEnv[source] {
		val := GetString(v.Name)
		if val == "" {
			if v.Required {
				missing = append(missing, v.Name)
			}
			continue
		}
		if v.Pattern != "" {
			matched, err := regexp.MatchString(v.Pattern, val)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %s: %w", v.Pattern, err)
			}
			if !matched {
				return nil, &errors.ConfigError{
					Component: source.String(),
					Message:   fmt.Sprintf("%s does not match the expected format %s", v.Name, v.Pattern),
				}
			}
		}
		values[v.Name] = val
	}

	if len(missing) > 0 {
		return nil, &errors.ConfigError{
			Component: source.String(),
			Message:   "required environment variables are not set",
			Missing:   missing,
		}
	}
	return values, nil
}

// Status describes how far a source is configured, for display.
type Status struct {
	Source  issues.Source
	Ready   bool
	Missing []string
	Values  map[string]string // Secrets redacted
}

// Check reports the configuration status of source without failing.
func Check(source issues.Source) Status {
	st := Status{Source: source, Values: make(map[string]string)}
	for _, v := range sourceEnv[source] {
		val := GetString(v.Name)
		switch {
		case val == "" && v.Required:
			st.Missing = append(st.Missing, v.Name)
		case val == "":
		case v.Secret:
			st.Values[v.Name] = Redact(val)
		default:
			st.Values[v.Name] = val
		}
	}
	st.Ready = len(st.Missing) == 0
	return st
}

// Redact masks all but the last four characters of a secret.
func Redact(secret string) string {
	const visible = 4
	if len(secret) <= visible {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", 8) + secret[len(secret)-visible:]
}
