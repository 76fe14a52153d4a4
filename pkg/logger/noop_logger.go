package logger

import "context"

// noopLogger discards everything. Used as the default in tests.
type noopLogger struct{}

// NewNoopLogger returns a logger that drops all entries.
func NewNoopLogger() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(context.Context, string, ...Field)        {}
func (noopLogger) Info(context.Context, string, ...Field)         {}
func (noopLogger) Warn(context.Context, string, ...Field)         {}
func (noopLogger) Error(context.Context, string, error, ...Field) {}
func (noopLogger) Fatal(context.Context, string, error, ...Field) {}

func (n noopLogger) WithFields(...Field) Logger  { return n }
func (n noopLogger) WithComponent(string) Logger { return n }
