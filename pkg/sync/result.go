package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/reconciler"
)

// Result represents the complete result of a sync run.
type Result struct {
	Source   issues.Source // Tracker that was synced
	Fetched  int           // Issues returned by the tracker
	Filtered int           // Issues dropped by the filter expression

	// Counts mirror the reconciler; Skipped includes failed issues.
	Created int
	Updated int
	Skipped int
	Failed  int

	Changes  *reconciler.Result   // Per-record detail
	Metadata *issues.SyncMetadata // Written metadata, nil on dry runs

	// Operation metadata
	DryRun   bool          // Whether this was a dry run
	Duration time.Duration // Wall time of the run
	StoreDir string        // Store the run worked against
}

// NewResult summarizes a reconciler result.
func NewResult(source issues.Source, changes *reconciler.Result) *Result {
	r := &Result{Source: source, Changes: changes}
	if changes != nil {
		r.Created = len(changes.Created)
		r.Updated = len(changes.Updated)
		r.Skipped = changes.SkippedCount()
		r.Failed = len(changes.Failures)
	}
	return r
}

// HasChanges returns true if the run created or updated records.
func (sr *Result) HasChanges() bool {
	return sr.Created > 0 || sr.Updated > 0
}

// Processed is the number of issues the reconciler saw.
func (sr *Result) Processed() int {
	return sr.Created + sr.Updated + sr.Skipped
}

// Summary returns a human-readable summary of the sync result.
func (sr *Result) Summary() string {
	summary := fmt.Sprintf("%s: %d created, %d updated, %d skipped", sr.Source, sr.Created, sr.Updated, sr.Skipped)

	var parts []string
	if sr.Failed > 0 {
		parts = append(parts, fmt.Sprintf("(%d failed)", sr.Failed))
	}
	if sr.Filtered > 0 {
		parts = append(parts, fmt.Sprintf("(%d filtered)", sr.Filtered))
	}
	if sr.DryRun {
		parts = append(parts, "(Dry run)")
	}
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}
	return summary
}
