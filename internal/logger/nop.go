package logger

// nopLogger discards every log entry. Tests for the store, service, and
// handlers use it so assertions stay focused on behavior, not log output.
type nopLogger struct{}

// NewNop returns a Logger that discards all entries.
func NewNop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...Field) {}

func (nopLogger) Info(string, ...Field) {}

func (nopLogger) Warn(string, ...Field) {}

func (nopLogger) Error(string, ...Field) {}

// Fatal discards the entry and does not exit.
func (nopLogger) Fatal(string, ...Field) {}

func (l nopLogger) With(...Field) Logger { return l }

func (nopLogger) Sync() error { return nil }
