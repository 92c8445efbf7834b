package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger and remembers the component it logs for.
type Logger struct {
	zerolog.Logger
	component string
}

// Config holds logger configuration
type Config struct {
	Level     string
	Format    string // "json" or "console"
	Component string
	Output    io.Writer
}

// DefaultConfig returns sensible defaults for logging
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Component: ComponentApp,
		Output:    os.Stdout,
	}
}

// New creates a new logger with the given configuration. Unknown levels fall back to info.
func New(config Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	if config.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}

	component := config.Component
	if component == "" {
		component = ComponentApp
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str(FieldComponent, component).
		Logger()

	return &Logger{
		Logger:    logger,
		component: component,
	}
}

// WithComponent returns a new logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With().Str(FieldComponent, component).Logger(),
		component: component,
	}
}

// Component returns the component name attached to the logger
func (l *Logger) Component() string {
	return l.component
}

// Nop returns a logger that discards everything. Used by tests and optional dependencies.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop(), component: ComponentApp}
}
