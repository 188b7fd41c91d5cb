package logger

// Logger defines the interface for logging operations.
// Samplers and parsers depend on it rather than on the slog wrapper.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
