package app

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/beadsync/pkg/logging"
)

// NewLogger builds the CLI logger. -v and -q override --log-level (and
// LOG_LEVEL); when both are given -q wins.
func NewLogger(config *Config) zerolog.Logger {
	level := resolveLevel(config, os.Stderr)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level.String(),
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level <= zerolog.DebugLevel,
	})
}

// resolveLevel picks the effective level, writing a warning to w for
// conflicting or unknown settings.
func resolveLevel(config *Config, w io.Writer) zerolog.Level {
	switch {
	case config.Verbose && config.Quiet:
		fmt.Fprintln(w, "Warning: both --verbose and --quiet specified, using --quiet")
		return zerolog.WarnLevel
	case config.Quiet:
		return zerolog.WarnLevel
	case config.Verbose:
		return zerolog.DebugLevel
	case config.LogLevel == "":
		return zerolog.InfoLevel
	}

	level, known := logging.ParseLevel(config.LogLevel)
	if !known {
		fmt.Fprintf(w, "Warning: invalid log level %q, using %q\n", config.LogLevel, level)
	}
	return level
}
