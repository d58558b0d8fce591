package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

func clearEnv(t *testing.T, source issues.Source) {
	t.Helper()
	for _, v := range EnvVars(source) {
		t.Setenv(v.Name, "")
	}
}

func TestResolveReportsAllMissing(t *testing.T) {
	clearEnv(t, issues.SourceJira)
	t.Setenv("JIRA_HOST", "acme.atlassian.net")

	_, err := Resolve(issues.SourceJira)
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "jira", cfgErr.Component)
	assert.Equal(t, []string{"JIRA_EMAIL", "JIRA_API_TOKEN", "JIRA_PROJECT_KEY"}, cfgErr.Missing)
}

func TestResolveSuccess(t *testing.T) {
	clearEnv(t, issues.SourceGitHub)
	t.Setenv("GITHUB_REPOSITORY", "acme/widgets")
	t.Setenv("GITHUB_TOKEN", "ghp_secret")

	values, err := Resolve(issues.SourceGitHub)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"GITHUB_REPOSITORY": "acme/widgets",
		"GITHUB_TOKEN":      "ghp_secret",
	}, values)
}

func TestResolvePattern(t *testing.T) {
	clearEnv(t, issues.SourceGitHub)
	t.Setenv("GITHUB_REPOSITORY", "widgets")
	t.Setenv("GITHUB_TOKEN", "ghp_secret")

	_, err := Resolve(issues.SourceGitHub)
	assert.True(t, errors.IsConfigError(err))
}

func TestResolveExampleNeedsNothing(t *testing.T) {
	values, err := Resolve(issues.SourceExample)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestResolveUnknownSource(t *testing.T) {
	_, err := Resolve(issues.Source("trello"))
	assert.True(t, errors.IsConfigError(err))
}

func TestGetStringPrefersViper(t *testing.T) {
	t.Setenv("GITLAB_URL", "https://env.example.com")
	viper.Set("GITLAB_URL", "https://config.example.com")
	t.Cleanup(viper.Reset)

	assert.Equal(t, "https://config.example.com", GetString("GITLAB_URL"))
}

func TestCheckRedactsSecrets(t *testing.T) {
	clearEnv(t, issues.SourceLinear)
	t.Setenv("LINEAR_API_KEY", "lin_api_abcdef1234")

	st := Check(issues.SourceLinear)
	assert.False(t, st.Ready)
	assert.Equal(t, []string{"LINEAR_TEAM_ID"}, st.Missing)
	assert.Equal(t, "********1234", st.Values["LINEAR_API_KEY"])
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "***", Redact("abc"))
	assert.Equal(t, "********6789", Redact("0123456789"))
}
