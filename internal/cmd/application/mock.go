package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/beadsync"
)

// Mock is a fixed Application for command tests. Zero fields fall back to
// a nil client, a discarding logger, table output and version "dev".
//
//	client, _ := beadsync.New(beadsync.WithStorePath(t.TempDir()))
//	cmd := list.NewCommand(&application.Mock{ClientValue: client, Format: "json"})
type Mock struct {
	ClientValue   beadsync.Client
	ClientErr     error
	Log           *zerolog.Logger
	Format        string
	SettingsValue Settings
	VersionValue  string
}

var _ Application = (*Mock)(nil)

func (m *Mock) Client() (beadsync.Client, error) {
	if m.ClientErr != nil {
		return nil, m.ClientErr
	}
	return m.ClientValue, nil
}

func (m *Mock) Logger() *zerolog.Logger {
	if m.Log == nil {
		nop := zerolog.Nop()
		m.Log = &nop
	}
	return m.Log
}

func (m *Mock) OutputFormat() string {
	if m.Format == "" {
		return "table"
	}
	return m.Format
}

func (m *Mock) Settings() Settings { return m.SettingsValue }

func (m *Mock) Version() string {
	if m.VersionValue == "" {
		return "dev"
	}
	return m.VersionValue
}
