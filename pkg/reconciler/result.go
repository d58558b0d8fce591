package reconciler

import (
	"fmt"

	"github.com/agentstation/beadsync/pkg/issues"
)

// Failure records an incoming issue that could not be reconciled.
type Failure struct {
	SourceKey string
	Err       error
}

// Update pairs an updated record with its previous version.
type Update struct {
	Before  issues.LocalRecord
	After   issues.LocalRecord
	Changes []FieldChange
}

// Result represents the outcome of reconciling one batch of incoming issues.
type Result struct {
	Created  []issues.LocalRecord // Records seen for the first time
	Updated  []Update             // Records whose tracker fields changed
	Skipped  []issues.LocalRecord // Records that matched and were unchanged
	Failures []Failure            // Issues that could not be reconciled

	// records is the full store content after reconciliation, in store
	// order with created records appended.
	records []issues.LocalRecord
}

// Records returns every record the store should hold after this run.
func (r *Result) Records() []issues.LocalRecord {
	out := make([]issues.LocalRecord, len(r.records))
	copy(out, r.records)
	return out
}

// SkippedCount counts unchanged issues and failed issues together.
func (r *Result) SkippedCount() int {
	return len(r.Skipped) + len(r.Failures)
}

// HasChanges reports whether the store content differs from before.
func (r *Result) HasChanges() bool {
	return len(r.Created) > 0 || len(r.Updated) > 0
}

// UpdatedRecords returns the new version of every updated record.
func (r *Result) UpdatedRecords() []issues.LocalRecord {
	out := make([]issues.LocalRecord, 0, len(r.Updated))
	for _, u := range r.Updated {
		out = append(out, u.After)
	}
	return out
}

// Errors returns the per-issue errors.
func (r *Result) Errors() []error {
	out := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, f.Err)
	}
	return out
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := fmt.Sprintf("%d created, %d updated, %d skipped", len(r.Created), len(r.Updated), r.SkippedCount())
	if len(r.Failures) > 0 {
		s += fmt.Sprintf(" (%d failed)", len(r.Failures))
	}
	return s
}
