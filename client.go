// Package beadsync pulls issues from external trackers (Jira, GitHub,
// GitLab, Linear) into a local newline-delimited JSON issue store.
//
// A sync run fetches the tracker's issues, normalizes them to a canonical
// form, diffs them against the store by tracker key and writes back the
// created and updated records together with run metadata. Local-only
// fields such as the local status are never overwritten.
//
// Example usage:
//
//	client, err := beadsync.New(beadsync.WithStorePath(".beads"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Sync(ctx, sync.WithSource(issues.SourceJira))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package beadsync

import (
	"context"
	"sync"

	"github.com/agentstation/beadsync/internal/config"
	"github.com/agentstation/beadsync/internal/sources"
	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/logging"
	"github.com/agentstation/beadsync/pkg/store"
	pkgsync "github.com/agentstation/beadsync/pkg/sync"

	// Register every tracker adapter.
	_ "github.com/agentstation/beadsync/internal/sources/all"
)

// Client syncs one local store with external trackers.
type Client interface {
	// Syncer runs sync and fetch operations
	Syncer

	// Reader gives read access to the local store
	Reader

	// Hooks provides access to event callback registration
	Hooks
}

// Syncer runs tracker operations.
type Syncer interface {
	// Sync pulls one tracker into the store.
	Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error)

	// Fetch pulls several trackers concurrently without touching the store.
	Fetch(ctx context.Context, query issues.Query, srcs ...issues.Source) ([]sources.Batch, error)
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	store   *store.Store
	hooks   *hooks

	// mu serializes runs within the process; the store lock covers
	// other processes.
	mu sync.Mutex
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	c := &client{
		options: o,
		store:   store.New(o.storePath, store.WithClock(o.now)),
		hooks:   newHooks(),
	}
	logging.Debug().Str("store", o.storePath).Msg("Client created")
	return c, nil
}

// source builds the adapter for id. Credentials are resolved and checked
// here, before any network or store access.
func (c *client) source(id issues.Source, values map[string]string) (sources.Source, error) {
	if src, ok := c.options.overrides[id]; ok {
		return src, nil
	}
	if values == nil {
		var err error
		if values, err = config.Resolve(id); err != nil {
			return nil, err
		}
	}
	return sources.New(id, sources.Config{
		Values:     values,
		HTTPClient: c.options.httpClient,
		RateLimit:  c.options.rateLimit,
	})
}

// Fetch runs the given trackers concurrently and returns one batch per
// tracker in argument order. Configuration errors fail the whole call;
// fetch errors are reported per batch.
func (c *client) Fetch(ctx context.Context, query issues.Query, srcs ...issues.Source) ([]sources.Batch, error) {
	requests := make([]sources.Request, 0, len(srcs))
	for _, id := range srcs {
		src, err := c.source(id, nil)
		if err != nil {
			return nil, err
		}
		requests = append(requests, sources.Request{Source: src, Query: query})
	}
	return sources.FetchAll(ctx, requests), nil
}
