package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/beadsync"
	"github.com/agentstation/beadsync/internal/cmd/application"
	"github.com/agentstation/beadsync/pkg/constants"
	"github.com/agentstation/beadsync/pkg/errors"
)

func newMock(t *testing.T, dir, format string) *application.Mock {
	t.Helper()
	client, err := beadsync.New(beadsync.WithStorePath(dir))
	require.NoError(t, err)
	return &application.Mock{
		ClientValue:   client,
		Format:        format,
		SettingsValue: application.Settings{StorePath: dir, NoColor: true},
	}
}

func execute(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSyncExampleDataJSON(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, newMock(t, dir, "json"), "--use-example-data")
	require.NoError(t, err)

	var rep Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, []string{"EXAMPLE-123", "EXAMPLE-124"}, rep.Created)
	assert.Empty(t, rep.Updated)
	assert.Equal(t, 2, rep.Fetched)
	assert.False(t, rep.DryRun)

	assert.FileExists(t, filepath.Join(dir, constants.IssuesFile))
	assert.FileExists(t, filepath.Join(dir, constants.MetadataFile))
}

func TestSyncTableSummary(t *testing.T) {
	dir := t.TempDir()
	app := newMock(t, dir, "table")

	out, err := execute(t, app, "--use-example-data")
	require.NoError(t, err)
	assert.Contains(t, out, "example: 2 created, 0 updated, 0 skipped")
	assert.Contains(t, out, "+ EXAMPLE-123 Implement user authentication")

	out, err = execute(t, app, "--use-example-data")
	require.NoError(t, err)
	assert.Contains(t, out, "example: 0 created, 0 updated, 2 skipped")
}

func TestSyncDryRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	out, err := execute(t, newMock(t, dir, "table"), "--use-example-data", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: no changes were written")

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSyncRequiresSource(t *testing.T) {
	_, err := execute(t, newMock(t, t.TempDir(), "table"))
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestSyncUnknownSource(t *testing.T) {
	_, err := execute(t, newMock(t, t.TempDir(), "table"), "--source", "bugzilla")
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestSyncMissingCredentials(t *testing.T) {
	t.Setenv("LINEAR_API_KEY", "")
	t.Setenv("LINEAR_TEAM_ID", "")

	dir := filepath.Join(t.TempDir(), "store")
	_, err := execute(t, newMock(t, dir, "table"), "--source", "linear")
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}
