package issues

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentstation/beadsync/pkg/errors"
)

// Source identifies the external tracker an issue came from.
type Source string

// String returns the string representation of a Source.
func (s Source) String() string {
	return string(s)
}

// Supported sources.
const (
	SourceJira    Source = "jira"    // Atlassian Jira (JQL search API)
	SourceGitHub  Source = "github"  // GitHub Issues (REST API)
	SourceGitLab  Source = "gitlab"  // GitLab Issues (REST API v4)
	SourceLinear  Source = "linear"  // Linear (GraphQL API)
	SourceExample Source = "example" // Built-in offline sample data
)

// Key prefixes for sources whose native identifier is a bare number.
const (
	GitHubKeyPrefix = "gh-"
	GitLabKeyPrefix = "gl-"
)

// projectKeyPattern accepts Jira and Linear style keys. Jira allows digits
// and underscores after the first letter of a project key (P2P-5).
var projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*-[0-9]+$`)

var keyPatterns = map[Source]*regexp.Regexp{
	SourceJira:    projectKeyPattern,
	SourceGitHub:  regexp.MustCompile(`^gh-[0-9]+$`),
	SourceGitLab:  regexp.MustCompile(`^gl-[0-9]+$`),
	SourceLinear:  projectKeyPattern,
	SourceExample: projectKeyPattern,
}

// Sources returns the real trackers in display order.
func Sources() []Source {
	return []Source{SourceJira, SourceGitHub, SourceGitLab, SourceLinear}
}

// ParseSource converts a user supplied name into a Source.
func ParseSource(name string) (Source, error) {
	s := Source(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", &errors.ConfigError{
			Component: "source",
			Message:   fmt.Sprintf("unknown source %q (expected one of jira, github, gitlab, linear)", name),
		}
	}
	return s, nil
}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	_, ok := keyPatterns[s]
	return ok
}

// KeyPattern returns the pattern a tracker-key label of this source matches.
func (s Source) KeyPattern() *regexp.Regexp {
	return keyPatterns[s]
}

// MatchesKey reports whether label looks like a tracker key of this source.
func (s Source) MatchesKey(label string) bool {
	p := keyPatterns[s]
	return p != nil && p.MatchString(label)
}

// TrackerKey returns the first label matching the source's key pattern.
func (s Source) TrackerKey(labels []string) (string, bool) {
	for _, l := range labels {
		if s.MatchesKey(l) {
			return l, true
		}
	}
	return "", false
}
