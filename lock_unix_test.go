//go:build unix

package beadsync_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/store"
	pkgsync "github.com/agentstation/beadsync/pkg/sync"
)

func TestSyncFailsWhileStoreLocked(t *testing.T) {
	dir := t.TempDir()
	lock, err := store.New(dir).Lock()
	require.NoError(t, err)
	defer func() { _ = lock.Unlock() }()

	c := newClient(t, dir)
	_, err = c.Sync(context.Background(), pkgsync.WithSource(issues.SourceExample))
	require.Error(t, err)
	assert.True(t, errors.IsLocked(err))

	// Dry runs only read and need no lock.
	_, err = c.Sync(context.Background(), pkgsync.WithSource(issues.SourceExample), pkgsync.WithDryRun(true))
	assert.NoError(t, err)
}
