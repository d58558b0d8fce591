package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/agentstation/beadsync/pkg/constants"
)

// Config describes how the logger is built.
type Config struct {
	Level      string // trace, debug, info, warn, error, off
	Format     string // auto, json or console
	Output     string // stderr, stdout, discard, or a file path (rotated)
	TimeFormat string // kitchen, rfc3339, stamp, unix or a Go layout
	NoColor    bool
	AddCaller  bool
	MaxSizeMB  int
	Fields     map[string]any // attached to every line
}

// DefaultConfig is info level, auto format, to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
		MaxSizeMB:  constants.LogRotationSizeMB,
	}
}

// FromEnv returns DefaultConfig overridden by LOG_LEVEL, LOG_FORMAT,
// LOG_OUTPUT, LOG_TIME_FORMAT and LOG_CALLER. DEBUG set to anything turns
// on debug output when LOG_LEVEL is absent.
func FromEnv() *Config {
	cfg := DefaultConfig()
	if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	for env, field := range map[string]*string{
		"LOG_LEVEL":       &cfg.Level,
		"LOG_FORMAT":      &cfg.Format,
		"LOG_OUTPUT":      &cfg.Output,
		"LOG_TIME_FORMAT": &cfg.TimeFormat,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
	cfg.AddCaller = os.Getenv("LOG_CALLER") == "true"
	return cfg
}

// Configure rebuilds the default logger from cfg.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// NewLoggerFromConfig builds a logger and sets zerolog's global level to
// match. A nil cfg means DefaultConfig.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level, _ := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(cfg.writer()).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	if len(cfg.Fields) > 0 {
		ctx = ctx.Fields(cfg.Fields)
	}
	return ctx.Logger()
}

var levelAliases = map[string]zerolog.Level{
	"warning":  zerolog.WarnLevel,
	"none":     zerolog.Disabled,
	"off":      zerolog.Disabled,
	"disabled": zerolog.Disabled,
}

// ParseLevel maps a level name to a zerolog level. Unknown names report
// false and yield info.
func ParseLevel(name string) (zerolog.Level, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if l, ok := levelAliases[name]; ok {
		return l, true
	}
	if name == "" {
		return zerolog.InfoLevel, false
	}
	l, err := zerolog.ParseLevel(name)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel, false
	}
	return l, true
}

var timeLayouts = map[string]string{
	"kitchen": time.Kitchen,
	"rfc3339": time.RFC3339,
	"stamp":   time.Stamp,
	"unix":    "",
}

func (c *Config) timeLayout() string {
	if layout, ok := timeLayouts[strings.ToLower(c.TimeFormat)]; ok {
		return layout
	}
	if strings.Contains(c.TimeFormat, "2006") || strings.Contains(c.TimeFormat, "15:04") {
		return c.TimeFormat
	}
	return time.Kitchen
}

// sink resolves Output to a writer and reports whether it is an
// interactive terminal.
func (c *Config) sink() (io.Writer, bool) {
	switch strings.ToLower(c.Output) {
	case "", "stderr":
		return os.Stderr, stderrIsTerminal()
	case "stdout":
		return os.Stdout, false
	case "discard", "none":
		return io.Discard, false
	}
	size := c.MaxSizeMB
	if size <= 0 {
		size = constants.LogRotationSizeMB
	}
	return &lumberjack.Logger{
		Filename:   c.Output,
		MaxSize:    size,
		MaxBackups: constants.LogRotationBackups,
		MaxAge:     constants.LogRotationAgeDays,
	}, false
}

func (c *Config) writer() io.Writer {
	out, tty := c.sink()
	switch strings.ToLower(c.Format) {
	case "json":
		return out
	case "console", "pretty":
	default:
		if !tty {
			return out
		}
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: c.timeLayout(), NoColor: c.NoColor}
}
