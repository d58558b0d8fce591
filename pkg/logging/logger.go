// Package logging holds the process-wide zerolog logger used by beadsync
// and the helpers that carry it through a context.
//
// Library code never builds its own logger. It asks the context for one
// (FromContext) so the fields attached by callers, such as the tracker
// being synced or the store directory, end up on every line. Binaries call
// Configure once at startup; until then the logger follows LOG_LEVEL,
// LOG_FORMAT and LOG_OUTPUT from the environment.
//
//	ctx = logging.WithSource(ctx, "jira")
//	logging.FromContext(ctx).Info().Int("issues", 12).Msg("Fetched issues")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

func init() {
	defaultLogger = NewLoggerFromConfig(FromEnv())
	zerolog.DefaultContextLogger = &defaultLogger
}

// Default returns the process-wide logger. The pointer is stable across
// SetDefault calls.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info starts an info event on the default logger.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn starts a warning event on the default logger.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error starts an error event on the default logger.
func Error() *zerolog.Event { return defaultLogger.Error() }

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
