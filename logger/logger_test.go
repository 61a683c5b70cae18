package logger

import "testing"

func TestGetReturnsSharedLogger(t *testing.T) {
	first := Get()
	if first == nil {
		t.Fatal("expected logger to be initialized")
	}
	second := Get()
	if first != second {
		t.Error("expected the same logger instance on repeated calls")
	}
}

func TestHelpersDoNotPanic(t *testing.T) {
	Debug("debug message", "key", "value")
	Info("info message", "key", "value")
	Warn("warn message", "key", "value")
	Error("error message", "error", "boom")
	With("component", "test").Info("scoped message")
}
