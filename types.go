package members

import (
	"log/slog"
)

// Logger is the logging surface the package needs. The default wraps
// slog so callers can swap in their own handler.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type defLogger struct {
	name string
}

// NewLogger returns the default slog-backed Logger, namespaced under the
// given component name.
func NewLogger(name string) Logger {
	return defLogger{name: name}
}

func (d defLogger) Debug(msg string, args ...any) { d.log(slog.Default().Debug, msg, args...) }
func (d defLogger) Info(msg string, args ...any)  { d.log(slog.Default().Info, msg, args...) }
func (d defLogger) Warn(msg string, args ...any)  { d.log(slog.Default().Warn, msg, args...) }
func (d defLogger) Error(msg string, args ...any) { d.log(slog.Default().Error, msg, args...) }

func (d defLogger) log(fn func(string, ...any), msg string, args ...any) {
	if d.name != "" {
		args = append(args, "component", d.name)
	}
	fn(msg, args...)
}
