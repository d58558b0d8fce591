// Package app wires the beadsync CLI together: configuration, logging, the
// lazily opened client, and the cobra command tree.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/beadsync"
	"github.com/agentstation/beadsync/internal/cmd/application"
	"github.com/agentstation/beadsync/internal/cmd/output"
)

var _ application.Application = (*App)(nil)

// BuildInfo is stamped into the binary at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

// App is the running CLI.
type App struct {
	build  BuildInfo
	config *Config
	flags  Flags
	logger *zerolog.Logger

	clientOnce sync.Once
	client     beadsync.Client
	clientErr  error
}

// Option customizes an App, mostly for tests.
type Option func(*App)

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(config *Config) Option {
	return func(a *App) { a.config = config }
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithClient supplies a ready client instead of opening the configured store.
func WithClient(c beadsync.Client) Option {
	return func(a *App) { a.client = c }
}

// New loads configuration and returns an App ready to Execute.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(config)

	a := &App{
		build:  BuildInfo{Version: version, Commit: commit, Date: date, BuiltBy: builtBy},
		config: config,
		logger: &logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *App) Version() string { return a.build.Version }
func (a *App) Config() *Config { return a.config }
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat is the -o value, or table on a terminal and JSON otherwise.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Settings returns the sync defaults after flags have been applied.
func (a *App) Settings() application.Settings {
	c := a.config
	return application.Settings{
		StorePath: c.StorePath,
		Source:    c.Source,
		Project:   c.Project,
		Component: c.Component,
		Filter:    c.Filter,
		Audit:     c.Audit,
		NoColor:   c.NoColor,
	}
}

// Client opens the configured store on first use. Later calls return the
// same client, or the same error.
func (a *App) Client() (beadsync.Client, error) {
	a.clientOnce.Do(func() {
		if a.client == nil {
			a.client, a.clientErr = beadsync.New(beadsync.WithStorePath(a.config.StorePath))
		}
	})
	return a.client, a.clientErr
}
