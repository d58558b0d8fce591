package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/filter"
	"github.com/agentstation/beadsync/pkg/issues"
)

var batch = []issues.CanonicalIssue{
	{SourceKey: "PROJ-1", Title: "API errors", Priority: issues.PriorityPtr(0), Labels: []string{"backend"}, Status: "To Do", Source: issues.SourceJira},
	{SourceKey: "PROJ-2", Title: "Button color", Labels: []string{"frontend"}, Status: "Blocked", Source: issues.SourceJira},
	{SourceKey: "PROJ-3", Title: "Login", Priority: issues.PriorityPtr(1), Assignee: "ana", Status: "In Progress", Source: issues.SourceJira},
}

func keys(in []issues.CanonicalIssue) []string {
	out := make([]string, 0, len(in))
	for _, ci := range in {
		out = append(out, ci.SourceKey)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		expression string
		want       []string
	}{
		{"", []string{"PROJ-1", "PROJ-2", "PROJ-3"}},
		{"priority <= 1", []string{"PROJ-1", "PROJ-3"}},
		{`"backend" in labels`, []string{"PROJ-1"}},
		{`"synced" in labels && key == "PROJ-2"`, []string{"PROJ-2"}},
		{`not (status in ["Blocked"])`, []string{"PROJ-1", "PROJ-3"}},
		{`assignee != "" || title matches "^API"`, []string{"PROJ-1", "PROJ-3"}},
		{`source == "github"`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := filter.Compile(tt.expression)
			require.NoError(t, err)

			kept, dropped, errs := f.Apply(batch)
			assert.Empty(t, errs)
			assert.Equal(t, tt.want, keys(kept))
			assert.Equal(t, len(batch)-len(tt.want), dropped)
		})
	}
}

func TestCompileRejectsBadExpressions(t *testing.T) {
	for _, bad := range []string{"priority +", `title`, "unknown_field == 1"} {
		_, err := filter.Compile(bad)
		assert.True(t, errors.IsValidationError(err), bad)
	}
}

func TestNilFilterKeepsEverything(t *testing.T) {
	var f *filter.Filter
	ok, err := f.Match(batch[0])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", f.String())
}
