package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	*slog.Logger
}

// Options selects the level, encoding and destination of a Logger.
type Options struct {
	Level  string // DEBUG, INFO, WARN, ERROR (default: INFO)
	Format string // json or text (default: text)
	Output string // stdout, stderr, or file path (default: stderr)
}

// DefaultLogger creates a logger using slog.Default()
func DefaultLogger() *Logger {
	return &Logger{
		Logger: slog.Default(),
	}
}

// Discard creates a logger that drops every record
func Discard() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// NewLogger creates a configured logger.
// Output defaults to stderr: stdout belongs to the status line.
func NewLogger(opts Options) *Logger {
	level := ParseLogLevel(opts.Level)
	format := strings.ToLower(opts.Format)
	output := opts.Output

	if format == "" {
		format = "text"
	}

	if output == "" {
		output = "stderr"
	}

	var writer io.Writer
	switch output {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		// File path
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			// Fallback to stderr if file can't be opened
			writer = os.Stderr
		} else {
			writer = file
		}
	}

	return newWithWriter(writer, format, level)
}

func newWithWriter(w io.Writer, format string, level slog.Level) *Logger {
	var handler slog.Handler
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	if format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// ParseLogLevel parses log level from string
func ParseLogLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLogLevel reports whether levelStr names a known level
func ValidLogLevel(levelStr string) bool {
	switch strings.ToUpper(levelStr) {
	case "", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		return true
	}
	return false
}

// SetDefaultLogger sets the logger as the default slog logger
func SetDefaultLogger(l *Logger) {
	slog.SetDefault(l.Logger)
}
