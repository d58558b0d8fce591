package reconciler

import (
	"time"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/store"
)

// IDGenerator assigns a local id to a newly seen issue. taken reports
// whether a candidate id is already in use.
type IDGenerator func(issue issues.CanonicalIssue, taken func(string) bool) (string, error)

type options struct {
	now   func() time.Time
	newID IDGenerator
}

func defaultOptions() *options {
	return &options{
		now:   func() time.Time { return time.Now().UTC() },
		newID: store.GenerateID,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithClock sets the clock used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		o.now = now
		return nil
	}
}

// WithIDGenerator replaces the local id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(o *options) error {
		if gen == nil {
			return &errors.ValidationError{Field: "id_generator", Message: "cannot be nil"}
		}
		o.newID = gen
		return nil
	}
}
