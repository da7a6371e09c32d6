package knob

import "log/slog"

// pkgLogger is nil until SetLogger is called; logger falls back to
// slog.Default so hosts that configure the default logger get knob output too.
var pkgLogger *slog.Logger

// SetLogger routes the package's log output to l. Pass nil to go back to
// slog.Default. Configuration problems are logged at Warn, gesture lifecycle
// at Debug.
func SetLogger(l *slog.Logger) {
	pkgLogger = l
}

func logger() *slog.Logger {
	if pkgLogger != nil {
		return pkgLogger
	}
	return slog.Default()
}

// warnConfig logs the problems Validate finds, if any.
func warnConfig(name string, cfg Config) {
	if err := cfg.Validate(); err != nil {
		logger().Warn("knob: configuration problem, using fallbacks", "knob", name, "problem", err)
	}
}
