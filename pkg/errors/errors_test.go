package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/beadsync/pkg/errors"
)

func TestAPIErrorClassification(t *testing.T) {
	tests := []struct {
		status      int
		rateLimited bool
		unauth      bool
		unavailable bool
	}{
		{status: http.StatusTooManyRequests, rateLimited: true},
		{status: http.StatusUnauthorized, unauth: true},
		{status: http.StatusForbidden, unauth: true},
		{status: http.StatusBadGateway, unavailable: true},
		{status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := fmt.Errorf("page 2: %w", errors.NewAPIError("jira", tt.status, "boom"))
			assert.Equal(t, tt.rateLimited, errors.IsRateLimited(err))
			assert.Equal(t, tt.unauth, errors.IsUnauthorized(err))
			assert.Equal(t, tt.unavailable, errors.IsSourceUnavailable(err))
		})
	}
}

func TestFetchErrorWrapsCause(t *testing.T) {
	cause := errors.NewAPIError("gitlab", 503, "maintenance")
	err := errors.NewFetchError("gitlab", cause)

	assert.True(t, errors.IsFetchError(err))
	assert.True(t, errors.IsSourceUnavailable(err))

	var apiErr *errors.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "fetch from gitlab failed")
}

func TestConfigErrorListsMissing(t *testing.T) {
	err := &errors.ConfigError{
		Component: "jira",
		Message:   "required environment variables are not set",
		Missing:   []string{"JIRA_HOST", "JIRA_API_TOKEN"},
	}
	assert.True(t, errors.IsConfigError(err))
	assert.Equal(t, "configuration error in jira: required environment variables are not set (missing: [JIRA_HOST JIRA_API_TOKEN])", err.Error())
}

func TestWrapHelpersPassNil(t *testing.T) {
	assert.NoError(t, errors.WrapIO("write", "x", nil))
	assert.NoError(t, errors.WrapParse("json", "x", nil))
}

func TestWrapIOPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.WrapIO("write", ".beads/issues.jsonl", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "IO error during write of .beads/issues.jsonl: disk full", err.Error())
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "jira API returned 404: no such project", errors.NewAPIError("jira", 404, "no such project").Error())
	assert.Equal(t, "linear API: connection reset", errors.NewAPIError("linear", 0, "connection reset").Error())
	assert.Equal(t, "record bd-1234 not found", errors.NewNotFoundError("record", "bd-1234").Error())
	assert.Equal(t, "reconcile jira issue PROJ-1: boom",
		(&errors.ReconcileError{Source: "jira", SourceKey: "PROJ-1", Err: stderrors.New("boom")}).Error())
	assert.Equal(t, "reconcile github issue: boom",
		(&errors.ReconcileError{Source: "github", Err: stderrors.New("boom")}).Error())
	assert.Equal(t, "configuration error: no source given", (&errors.ConfigError{Message: "no source given"}).Error())
}

func TestJoinedFetchErrors(t *testing.T) {
	err := errors.Join(
		errors.NewFetchError("jira", errors.NewAPIError("jira", 401, "bad token")),
		errors.NewFetchError("gitlab", errors.NewAPIError("gitlab", 502, "bad gateway")),
	)
	assert.True(t, errors.IsFetchError(err))
	assert.True(t, errors.IsUnauthorized(err))
	assert.True(t, errors.IsSourceUnavailable(err))
	assert.False(t, errors.IsRateLimited(err))
}

func TestValidationAndLockSentinels(t *testing.T) {
	assert.True(t, errors.IsValidationError(errors.NewValidationError("source_key", "", "must not be empty")))
	assert.True(t, errors.IsLocked(&errors.LockError{Path: ".beads/.sync.lock"}))
	assert.True(t, errors.IsNotFound(errors.NewNotFoundError("record", "bd-1234")))
}
