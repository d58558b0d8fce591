package beadsync

import (
	"context"

	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/logging"
	"github.com/agentstation/beadsync/pkg/reconciler"
	"github.com/agentstation/beadsync/pkg/store"
	pkgsync "github.com/agentstation/beadsync/pkg/sync"
)

// persist writes the reconciled records, the run metadata and, when
// requested, an audit entry. count is the number of issues that survived
// filtering.
func (c *client) persist(ctx context.Context, options *pkgsync.Options, changes *reconciler.Result, count, fetched int) (issues.SyncMetadata, error) {
	logger := logging.FromContext(ctx)

	records := changes.Records()
	if err := c.store.WriteRecords(records); err != nil {
		return issues.SyncMetadata{}, err
	}
	logger.Debug().Int("records", len(records)).Str("path", c.store.IssuesPath()).Msg("Store written")

	meta, err := c.store.WriteMetadata(options.Source, count)
	if err != nil {
		return issues.SyncMetadata{}, err
	}

	if options.Audit {
		entry, err := c.auditEntry(options, changes, fetched)
		if err != nil {
			return meta, err
		}
		if err := c.store.AppendAudit(entry); err != nil {
			return meta, err
		}
		logger.Debug().Str("path", c.store.AuditPath()).Msg("Audit entry appended")
	}
	return meta, nil
}

// auditEntry describes a run as created ids plus one merge patch per
// updated record.
func (c *client) auditEntry(options *pkgsync.Options, changes *reconciler.Result, fetched int) (store.AuditEntry, error) {
	entry := store.AuditEntry{
		Timestamp: c.options.now(),
		Source:    options.Source,
		Fetched:   fetched,
		Skipped:   len(changes.Skipped),
		Failed:    len(changes.Failures),
	}
	for _, r := range changes.Created {
		entry.Created = append(entry.Created, r.ID)
	}
	for _, u := range changes.Updated {
		patch, err := store.MergePatch(u.Before, u.After)
		if err != nil {
			return entry, err
		}
		entry.Updated = append(entry.Updated, store.AuditChange{
			ID:        u.After.ID,
			SourceKey: u.After.SourceKey,
			Patch:     patch,
		})
	}
	return entry, nil
}
