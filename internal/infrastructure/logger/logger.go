// Package logger wraps zerolog behind a small service-wide facade. Output is
// JSON by default; console format is for local development.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error, fatal, panic)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the output format (json, console)
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// EnableCaller adds caller information to log entries
	EnableCaller bool `env:"LOG_CALLER" envDefault:"false"`

	// ServiceName tags every entry so aggregated logs stay attributable
	ServiceName string `env:"SERVICE_NAME" envDefault:"airease"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "airease",
	}
}

// Logger embeds zerolog.Logger so call sites keep the zerolog event API.
type Logger struct {
	zerolog.Logger
}

// New builds a logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput builds a logger writing to the given writer. Tests pass a
// buffer here to assert on emitted fields.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		// An unparseable level falls back rather than failing startup.
		level = zerolog.InfoLevel
	}

	writer := output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName)
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	return &Logger{Logger: ctx.Logger()}
}

// WithComponent returns a child logger tagged with a component name, used by
// adapters that emit from background goroutines.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With().Str("component", component).Logger()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Global is the process-wide logger, set once at startup via Init.
var Global *Logger

// Init installs the global logger.
func Init(cfg Config) {
	Global = New(cfg)
}

// SetGlobal replaces the global logger, primarily for tests.
func SetGlobal(l *Logger) {
	Global = l
}

// ensure lazily installs defaults so package-level logging never nil-panics
// in code paths that run before Init.
func ensure() *Logger {
	if Global == nil {
		Init(DefaultConfig())
	}
	return Global
}

// Debug returns a debug level event from the global logger.
func Debug() *zerolog.Event { return ensure().Logger.Debug() }

// Info returns an info level event from the global logger.
func Info() *zerolog.Event { return ensure().Logger.Info() }

// Warn returns a warn level event from the global logger.
func Warn() *zerolog.Event { return ensure().Logger.Warn() }

// Error returns an error level event from the global logger.
func Error() *zerolog.Event { return ensure().Logger.Error() }

// Fatal returns a fatal level event from the global logger.
func Fatal() *zerolog.Event { return ensure().Logger.Fatal() }
