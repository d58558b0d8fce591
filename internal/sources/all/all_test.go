package all

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/beadsync/internal/sources"
	"github.com/agentstation/beadsync/pkg/issues"
)

func TestEveryTrackerRegistered(t *testing.T) {
	for _, id := range append(issues.Sources(), issues.SourceExample) {
		assert.True(t, sources.Has(id), id)
	}
	assert.Len(t, sources.List(), 5)
}
