// Package reconciler decides, for every incoming canonical issue, whether the
// local store needs a new record, an updated record, or nothing at all.
//
// Reconciliation is a pure per-key diff against an index built once from the
// store. Issues are processed in the order the adapter returned them and a
// failure for one issue never stops the others.
package reconciler

import (
	"context"
	"time"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/logging"
	"github.com/agentstation/beadsync/pkg/store"
)

// Reconciler is the main interface for reconciling incoming issues with the
// local store.
type Reconciler interface {
	// Reconcile diffs incoming against index. It never touches disk.
	Reconcile(ctx context.Context, incoming []issues.CanonicalIssue, index *store.Index) *Result
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	opts *options
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{opts: o}, nil
}

type batchKey struct {
	source issues.Source
	key    string
}

// run holds the working state of one Reconcile call.
type run struct {
	index    *store.Index
	records  []issues.LocalRecord
	position map[string]int // local id -> position in records
	seen     map[batchKey]bool
	newIDs   map[string]bool
}

// Reconcile performs reconciliation with a clean step-by-step flow.
func (r *reconciler) Reconcile(ctx context.Context, incoming []issues.CanonicalIssue, index *store.Index) *Result {
	logger := logging.FromContext(ctx)
	if index == nil {
		index = store.NewIndex(nil)
	}

	// Step 1: start from the store as loaded
	st := &run{
		index:    index,
		records:  index.Records(),
		position: make(map[string]int, index.Len()),
		seen:     make(map[batchKey]bool, len(incoming)),
		newIDs:   make(map[string]bool),
	}
	for i, rec := range st.records {
		if _, ok := st.position[rec.ID]; !ok {
			st.position[rec.ID] = i
		}
	}

	result := &Result{}
	now := r.opts.now()

	// Step 2: decide each issue independently, in adapter order
	for _, in := range incoming {
		ci := in.Normalize()
		if err := ci.Validate(); err != nil {
			r.fail(ctx, result, ci, err)
			continue
		}

		bk := batchKey{ci.Source, ci.SourceKey}
		if st.seen[bk] {
			r.fail(ctx, result, ci, errors.NewValidationError("source_key", ci.SourceKey, "duplicate issue in fetched batch"))
			continue
		}
		st.seen[bk] = true

		existing, found := index.LookupSource(ci.Source, ci.SourceKey)
		if !found {
			rec, err := r.create(st, ci, now)
			if err != nil {
				r.fail(ctx, result, ci, err)
				continue
			}
			result.Created = append(result.Created, rec)
			logger.Debug().Str("id", rec.ID).Str("source_key", ci.SourceKey).Msg("Created record")
			continue
		}

		changes := Diff(existing, ci)
		if len(changes) == 0 {
			result.Skipped = append(result.Skipped, existing)
			continue
		}

		updated := apply(existing, ci)
		updated.UpdatedAt = now
		st.records[st.position[existing.ID]] = updated
		result.Updated = append(result.Updated, Update{Before: existing, After: updated, Changes: changes})
		logger.Debug().
			Str("id", updated.ID).
			Str("source_key", ci.SourceKey).
			Int("fields", len(changes)).
			Msg("Updated record")
	}

	// Step 3: hand back the full post-run store content
	result.records = st.records

	logger.Info().
		Int("created", len(result.Created)).
		Int("updated", len(result.Updated)).
		Int("skipped", result.SkippedCount()).
		Int("failed", len(result.Failures)).
		Msg("Reconciled incoming issues")

	return result
}

// create synthesizes a new record for a first-seen issue.
func (r *reconciler) create(st *run, ci issues.CanonicalIssue, now time.Time) (issues.LocalRecord, error) {
	id, err := r.opts.newID(ci, func(id string) bool {
		return st.index.HasID(id) || st.newIDs[id]
	})
	if err != nil {
		return issues.LocalRecord{}, err
	}
	st.newIDs[id] = true

	rec := issues.LocalRecord{
		ID:            id,
		Title:         ci.Title,
		Description:   ci.Description,
		Status:        issues.StatusOpen,
		Priority:      issues.PriorityOf(ci.Priority),
		Type:          ci.Type,
		Assignee:      ci.Assignee,
		Labels:        append([]string(nil), ci.Labels...),
		Source:        ci.Source,
		SourceKey:     ci.SourceKey,
		TrackerStatus: ci.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	st.position[id] = len(st.records)
	st.records = append(st.records, rec)
	return rec, nil
}

func (r *reconciler) fail(ctx context.Context, result *Result, ci issues.CanonicalIssue, err error) {
	rerr := &errors.ReconcileError{Source: ci.Source.String(), SourceKey: ci.SourceKey, Err: err}
	result.Failures = append(result.Failures, Failure{SourceKey: ci.SourceKey, Err: rerr})
	ctx = logging.WithIssue(ctx, ci.Source.String(), ci.SourceKey)
	logging.FromContext(ctx).Warn().Err(err).Msg("Skipping issue that could not be reconciled")
}
