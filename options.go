package beadsync

import (
	"net/http"
	"time"

	"github.com/agentstation/beadsync/internal/sources"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/reconciler"
)

// Option is a function that configures a Client instance.
type Option func(*options) error

// options holds the configuration of a Client.
type options struct {
	storePath  string
	now        func() time.Time
	httpClient *http.Client
	rateLimit  int
	idGen      reconciler.IDGenerator

	// overrides maps a tracker to a ready-made adapter, bypassing the
	// registry and credential resolution.
	overrides map[issues.Source]sources.Source
}

func defaults() *options {
	return &options{
		now:       func() time.Time { return time.Now().UTC() },
		overrides: make(map[issues.Source]sources.Source),
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.storePath == "" {
		return nil, &errors.ConfigError{Component: "store", Message: "store path is required"}
	}
	return o, nil
}

// WithStorePath sets the directory holding issues.jsonl and metadata.json.
// The path is used as given; the working directory is never consulted.
func WithStorePath(path string) Option {
	return func(o *options) error {
		o.storePath = path
		return nil
	}
}

// WithClock sets the clock used for record timestamps and sync metadata.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		o.now = now
		return nil
	}
}

// WithHTTPClient sets the HTTP client adapters use.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		o.httpClient = hc
		return nil
	}
}

// WithRateLimit sets the sustained requests per minute for adapters. A
// negative value disables limiting.
func WithRateLimit(perMinute int) Option {
	return func(o *options) error {
		o.rateLimit = perMinute
		return nil
	}
}

// WithIDGenerator replaces the local id generator.
func WithIDGenerator(gen reconciler.IDGenerator) Option {
	return func(o *options) error {
		if gen == nil {
			return &errors.ValidationError{Field: "id_generator", Message: "cannot be nil"}
		}
		o.idGen = gen
		return nil
	}
}

// WithSource registers a ready-made adapter for its tracker. Syncs against
// that tracker use it instead of building one from the environment.
func WithSource(src sources.Source) Option {
	return func(o *options) error {
		if src == nil {
			return &errors.ValidationError{Field: "source", Message: "cannot be nil"}
		}
		o.overrides[src.ID()] = src
		return nil
	}
}
