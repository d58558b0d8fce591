package example

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/beadsync/internal/sources"
	"github.com/agentstation/beadsync/pkg/issues"
)

func TestExampleSource(t *testing.T) {
	src, err := sources.New(issues.SourceExample, sources.Config{})
	require.NoError(t, err)
	assert.Equal(t, issues.SourceExample, src.ID())

	got, err := src.Fetch(context.Background(), issues.Query{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "EXAMPLE-123", got[0].SourceKey)
	assert.Equal(t, "EXAMPLE-124", got[1].SourceKey)
	for _, ci := range got {
		assert.NoError(t, ci.Validate())
		assert.Contains(t, ci.Labels, issues.MarkerLabel)
	}
}

func TestIssuesAreIndependentCopies(t *testing.T) {
	a := Issues()
	a[0].Labels[0] = "mutated"
	b := Issues()
	assert.NotEqual(t, "mutated", b[0].Labels[0])
}

func TestFetchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Source{}).Fetch(ctx, issues.Query{})
	assert.ErrorIs(t, err, context.Canceled)
}
