package issues

import "time"

// SyncMetadata records the provenance of the most recent sync run.
type SyncMetadata struct {
	LastSync   time.Time `json:"lastSync" yaml:"last_sync"`
	Source     Source    `json:"source" yaml:"source"`
	IssueCount int       `json:"issueCount" yaml:"issue_count"`
}
