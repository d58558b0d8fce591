// Package application is the seam between cobra commands and the running
// CLI. Commands take an Application; tests hand them a Mock.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/beadsync"
)

// Application is what a command may ask of the CLI. Implementations are
// safe for concurrent use.
type Application interface {
	// Client returns the client bound to the configured store.
	Client() (beadsync.Client, error)
	Logger() *zerolog.Logger
	// OutputFormat is the -o value, or one detected from the terminal.
	OutputFormat() string
	Settings() Settings
	Version() string
}

// Settings are command defaults from the config file and environment.
// Command flags override them.
type Settings struct {
	StorePath string
	Source    string
	Project   string
	Component string
	Filter    string
	Audit     bool
	NoColor   bool
}
