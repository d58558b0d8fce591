// Package sync provides the options and result types of a tracker sync run.
package sync

import (
	"time"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/filter"
	"github.com/agentstation/beadsync/pkg/issues"
)

// Options controls one Client.Sync run.
type Options struct {
	// Source selection
	Source    issues.Source // Tracker to pull from
	Project   string        // Project key override (Jira project, Linear team)
	Component string        // Component or label scope
	OpenOnly  bool          // Exclude closed issues at the tracker

	// Run control
	DryRun  bool          // Reconcile and report without writing the store
	Audit   bool          // Append an entry to the audit log
	Timeout time.Duration // Timeout for the entire run; zero means none

	// Filter is an optional boolean expression evaluated per issue after
	// fetching. Issues it rejects are neither reconciled nor counted.
	Filter string

	// Values carries resolved adapter settings keyed by environment
	// variable name. Nil means the client resolves them itself.
	Values map[string]string
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		OpenOnly: true,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks the options before any I/O happens.
func (s *Options) Validate() error {
	if s.Source == "" {
		return &errors.ConfigError{Component: "source", Message: "no source selected"}
	}
	if !s.Source.Valid() {
		return &errors.ConfigError{Component: "source", Message: "unknown source " + s.Source.String()}
	}
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	if s.Filter != "" {
		if _, err := filter.Compile(s.Filter); err != nil {
			return err
		}
	}
	return nil
}

// Query returns the tracker query these options describe.
func (s *Options) Query() issues.Query {
	return issues.Query{
		ProjectKey: s.Project,
		Component:  s.Component,
		OpenOnly:   s.OpenOnly,
	}
}

// WithSource selects the tracker.
func WithSource(source issues.Source) Option {
	return func(opts *Options) {
		opts.Source = source
	}
}

// WithProject overrides the configured project key.
func WithProject(project string) Option {
	return func(opts *Options) {
		opts.Project = project
	}
}

// WithComponent restricts the fetch to one component.
func WithComponent(component string) Option {
	return func(opts *Options) {
		opts.Component = component
	}
}

// WithOpenOnly configures whether closed issues are excluded.
func WithOpenOnly(openOnly bool) Option {
	return func(opts *Options) {
		opts.OpenOnly = openOnly
	}
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithAudit configures whether the run is appended to the audit log.
func WithAudit(audit bool) Option {
	return func(opts *Options) {
		opts.Audit = audit
	}
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithFilter sets the issue filter expression.
func WithFilter(expression string) Option {
	return func(opts *Options) {
		opts.Filter = expression
	}
}

// WithValues supplies pre-resolved adapter settings.
func WithValues(values map[string]string) Option {
	return func(opts *Options) {
		opts.Values = values
	}
}
