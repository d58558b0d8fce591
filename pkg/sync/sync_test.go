package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/reconciler"
)

func TestDefaultsAndApply(t *testing.T) {
	opts := Defaults().Apply(
		WithSource(issues.SourceJira),
		WithProject("PROJ"),
		WithComponent("api"),
		WithDryRun(true),
		WithAudit(true),
		WithTimeout(time.Minute),
		WithFilter(`priority <= 1`),
	)

	assert.Equal(t, issues.SourceJira, opts.Source)
	assert.True(t, opts.DryRun)
	assert.True(t, opts.Audit)
	assert.Equal(t, issues.Query{ProjectKey: "PROJ", Component: "api", OpenOnly: true}, opts.Query())
	require.NoError(t, opts.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		opts   *Options
		config bool
	}{
		{"no source", Defaults(), true},
		{"unknown source", Defaults().Apply(WithSource("trello")), true},
		{"negative timeout", Defaults().Apply(WithSource(issues.SourceGitHub), WithTimeout(-time.Second)), false},
		{"bad filter", Defaults().Apply(WithSource(issues.SourceGitHub), WithFilter("priority <")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.config, errors.IsConfigError(err))
		})
	}
}

func TestResultSummary(t *testing.T) {
	changes := &reconciler.Result{
		Created:  []issues.LocalRecord{{ID: "bd-1"}},
		Skipped:  []issues.LocalRecord{{ID: "bd-2"}, {ID: "bd-3"}},
		Failures: []reconciler.Failure{{SourceKey: "PROJ-9"}},
	}
	r := NewResult(issues.SourceJira, changes)
	assert.Equal(t, 1, r.Created)
	assert.Equal(t, 3, r.Skipped)
	assert.Equal(t, 4, r.Processed())
	assert.True(t, r.HasChanges())
	assert.Equal(t, "jira: 1 created, 0 updated, 3 skipped (1 failed)", r.Summary())

	r.DryRun = true
	r.Filtered = 2
	assert.Equal(t, "jira: 1 created, 0 updated, 3 skipped (1 failed) (2 filtered) (Dry run)", r.Summary())

	empty := NewResult(issues.SourceGitHub, nil)
	assert.False(t, empty.HasChanges())
	assert.Equal(t, "github: 0 created, 0 updated, 0 skipped", empty.Summary())
}
