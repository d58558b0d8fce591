package list

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/beadsync"
	"github.com/agentstation/beadsync/internal/cmd/application"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	pkgsync "github.com/agentstation/beadsync/pkg/sync"
)

func syncedClient(t *testing.T) beadsync.Client {
	t.Helper()
	client, err := beadsync.New(beadsync.WithStorePath(t.TempDir()))
	require.NoError(t, err)
	_, err = client.Sync(context.Background(), pkgsync.WithSource(issues.SourceExample))
	require.NoError(t, err)
	return client
}

func execute(t *testing.T, client beadsync.Client, format string, args ...string) (string, error) {
	t.Helper()
	app := &application.Mock{
		ClientValue: client,
		Format:      format,
	}
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListJSON(t *testing.T) {
	out, err := execute(t, syncedClient(t), "json")
	require.NoError(t, err)

	var records []issues.LocalRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "EXAMPLE-123", records[0].SourceKey)
	assert.Equal(t, issues.StatusOpen, records[0].Status)
}

func TestListTable(t *testing.T) {
	out, err := execute(t, syncedClient(t), "table")
	require.NoError(t, err)
	assert.Contains(t, out, "EXAMPLE-123")
	assert.Contains(t, out, "Fix memory leak in image cache")
}

func TestListSourceFilterAndLimit(t *testing.T) {
	client := syncedClient(t)

	out, err := execute(t, client, "json", "--source", "jira")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	out, err = execute(t, client, "json", "--limit", "1")
	require.NoError(t, err)
	var records []issues.LocalRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 1)
}

func TestListBadFormat(t *testing.T) {
	_, err := execute(t, syncedClient(t), "xml")
	require.Error(t, err)
}

func TestListBadSource(t *testing.T) {
	_, err := execute(t, syncedClient(t), "table", "--source", "nope")
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}
