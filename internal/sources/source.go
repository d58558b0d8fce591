// Package sources holds the tracker adapters and the registry that maps a
// configured source name to its adapter.
//
// Each adapter lives in its own subpackage and registers a factory from
// init(). Importing internal/sources/all wires every adapter in.
package sources

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

// Source fetches issues from one tracker and normalizes them.
type Source interface {
	// ID returns the tracker this adapter talks to.
	ID() issues.Source

	// Fetch runs query against the tracker. Errors are returned as-is and
	// never retried.
	Fetch(ctx context.Context, query issues.Query) ([]issues.CanonicalIssue, error)
}

// Config carries the resolved settings an adapter is built from.
type Config struct {
	// Values are the adapter's settings keyed by environment variable name
	// (JIRA_HOST, GITLAB_TOKEN, ...).
	Values map[string]string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client

	// RateLimit is the sustained requests per minute. Zero keeps the default
	// and a negative value disables limiting.
	RateLimit int
}

// Get returns the value of key, or def when unset.
func (c Config) Get(key, def string) string {
	if v, ok := c.Values[key]; ok && v != "" {
		return v
	}
	return def
}

// Factory builds an adapter from its configuration.
type Factory func(cfg Config) (Source, error)

var (
	mu        sync.RWMutex
	factories = make(map[issues.Source]Factory)
)

// Register makes an adapter available under id.
// This is called by adapter packages in their init() functions.
func Register(id issues.Source, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[id] = factory
}

// New builds the adapter registered for id.
func New(id issues.Source, cfg Config) (Source, error) {
	mu.RLock()
	factory, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, &errors.ConfigError{
			Component: "source",
			Message:   fmt.Sprintf("no adapter registered for source %q", id),
		}
	}
	return factory(cfg)
}

// Has reports whether an adapter is registered for id.
func Has(id issues.Source) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}

// List returns the registered source ids, sorted.
func List() []issues.Source {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]issues.Source, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
