package beadsync

import (
	"context"
	"time"

	"github.com/agentstation/beadsync/internal/sources"
	"github.com/agentstation/beadsync/pkg/filter"
	"github.com/agentstation/beadsync/pkg/logging"
	"github.com/agentstation/beadsync/pkg/reconciler"
	pkgsync "github.com/agentstation/beadsync/pkg/sync"
)

// offlineNotice is logged whenever a fetch fails; the store is untouched.
const offlineNotice = "Existing local issues are still available offline"

// Sync pulls one tracker into the local store.
//
// Configuration problems are reported before any I/O. A failed fetch
// returns a FetchError and leaves the store exactly as it was. Issues that
// fail validation are skipped and reported in the result. Errors writing
// the store are returned as IOErrors.
func (c *client) Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	// Step 1: Parse and validate options
	options := pkgsync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	flt, err := filter.Compile(options.Filter)
	if err != nil {
		return nil, err
	}

	// Step 2: Build the adapter, checking credentials
	src, err := c.source(options.Source, options.Values)
	if err != nil {
		return nil, err
	}

	// Step 3: Setup context with timeout and logging fields
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()
	ctx = logging.WithOperation(logging.WithStore(ctx, c.store.Dir()), "sync")
	logger := logging.FromContext(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Step 4: Take the store lock so concurrent runs cannot lose updates
	if !options.DryRun {
		lock, err := c.store.Lock()
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn().Err(err).Msg("Failed to release store lock")
			}
		}()
	}

	// Step 5: Load the store index once
	index, err := c.store.LoadIndex()
	if err != nil {
		return nil, err
	}

	// Step 6: Fetch from the tracker
	incoming, err := sources.Fetch(ctx, src, options.Query())
	if err != nil {
		logger.Error().Err(err).Str("source", options.Source.String()).Msg("Failed to fetch issues")
		logger.Warn().Int("records", index.Len()).Msg(offlineNotice)
		return nil, err
	}

	// Step 7: Apply the filter expression
	kept, dropped, filterErrs := flt.Apply(incoming)
	for _, ferr := range filterErrs {
		logger.Warn().Err(ferr).Msg("Filter failed on issue, dropping it")
	}

	// Step 8: Reconcile against the index
	rec, err := reconciler.New(c.reconcilerOptions()...)
	if err != nil {
		return nil, err
	}
	changes := rec.Reconcile(ctx, kept, index)

	result := pkgsync.NewResult(options.Source, changes)
	result.Fetched = len(incoming)
	result.Filtered = dropped
	result.DryRun = options.DryRun
	result.StoreDir = c.store.Dir()

	if changes.HasChanges() {
		logger.Info().
			Int("created", result.Created).
			Int("updated", result.Updated).
			Int("skipped", result.Skipped).
			Msg("Changes detected")
	} else {
		logger.Info().Int("skipped", result.Skipped).Msg("No changes detected")
	}

	// Step 9: Persist unless this is a dry run
	if options.DryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed - store not written")
		result.Duration = time.Since(start)
		return result, nil
	}

	meta, err := c.persist(ctx, options, changes, len(kept), len(incoming))
	if err != nil {
		return nil, err
	}
	result.Metadata = &meta

	// Step 10: Notify hooks of persisted changes
	c.hooks.trigger(changes)

	result.Duration = time.Since(start)
	logger.Info().Dur("duration", result.Duration).Msg(result.Summary())
	return result, nil
}

func (c *client) reconcilerOptions() []reconciler.Option {
	opts := []reconciler.Option{reconciler.WithClock(c.options.now)}
	if c.options.idGen != nil {
		opts = append(opts, reconciler.WithIDGenerator(c.options.idGen))
	}
	return opts
}
