package branch

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/beadsync"
	"github.com/agentstation/beadsync/internal/cmd/application"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	pkgsync "github.com/agentstation/beadsync/pkg/sync"
)

func TestBranch(t *testing.T) {
	client, err := beadsync.New(beadsync.WithStorePath(t.TempDir()))
	require.NoError(t, err)
	_, err = client.Sync(context.Background(), pkgsync.WithSource(issues.SourceExample))
	require.NoError(t, err)

	records, err := client.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)

	app := &application.Mock{ClientValue: client}

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "by tracker key", ref: "EXAMPLE-123", want: "feature/EXAMPLE-123-implement-user-authentication\n"},
		{name: "by local id", ref: records[1].ID, want: "bug/EXAMPLE-124-fix-memory-leak-in-image-cache\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCommand(app)
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{tt.ref})
			require.NoError(t, cmd.ExecuteContext(context.Background()))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestBranchNotFound(t *testing.T) {
	client, err := beadsync.New(beadsync.WithStorePath(t.TempDir()))
	require.NoError(t, err)
	app := &application.Mock{ClientValue: client}

	cmd := NewCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"PROJ-1"})
	err = cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
