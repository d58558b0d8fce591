package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/beadsync/internal/config"
	"github.com/agentstation/beadsync/pkg/issues"
)

func TestRecordsToTableData(t *testing.T) {
	records := []issues.LocalRecord{{
		ID:            "bd-1a2b",
		Title:         "Login fails",
		Status:        issues.StatusOpen,
		Priority:      1,
		Type:          issues.TypeBug,
		SourceKey:     "PROJ-1",
		TrackerStatus: "In Progress",
		Labels:        []string{"PROJ-1", "synced"},
		UpdatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	narrow := RecordsToTableData(records, false)
	assert.Len(t, narrow.Headers, 6)
	assert.Equal(t, []string{"bd-1a2b", "PROJ-1", "Login fails", "open", "P1", "bug"}, narrow.Rows[0])

	wide := RecordsToTableData(records, true)
	assert.Len(t, wide.Headers, 10)
	assert.Equal(t, []string{"In Progress", "-", "PROJ-1,synced", "2026-01-02T03:04:05Z"}, wide.Rows[0][6:])
	assert.Len(t, wide.ColumnAlignment, len(wide.Headers))
}

func TestStatusToTableData(t *testing.T) {
	data := StatusToTableData(StoreStatus{
		StorePath: ".beads",
		Records:   3,
		BySource:  map[issues.Source]int{issues.SourceJira: 2, "": 1},
	})
	assert.Equal(t, []string{"Last Sync", "never"}, data.Rows[2])
	assert.Equal(t, []string{"Records from (untracked)", "1"}, data.Rows[3])
	assert.Equal(t, []string{"Records from jira", "2"}, data.Rows[4])
}

func TestCredentialsToTableData(t *testing.T) {
	data := CredentialsToTableData([]config.Status{
		{Source: issues.SourceGitHub, Ready: true},
		{Source: issues.SourceLinear, Missing: []string{"LINEAR_API_KEY", "LINEAR_TEAM_ID"}},
	})
	assert.Equal(t, []string{"github", "✓ configured", "-"}, data.Rows[0])
	assert.Equal(t, []string{"linear", "✗ missing", "LINEAR_API_KEY, LINEAR_TEAM_ID"}, data.Rows[1])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "héllo", Truncate("héllo", 5))
}
