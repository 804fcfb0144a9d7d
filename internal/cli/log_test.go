package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", LogInfo, func(l *log.Logger) { l.Info("rendered") }, true},
		{"debug at info level", LogInfo, func(l *log.Logger) { l.Debug("http") }, false},
		{"debug at debug level", LogDebug, func(l *log.Logger) { l.Debug("http") }, true},
		{"info at warn level", LogWarn, func(l *log.Logger) { l.Info("rendered") }, false},
		{"warn at warn level", LogWarn, func(l *log.Logger) { l.Warn("history disabled") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("visible")
	if !bytes.Contains(buf.Bytes(), []byte("visible")) {
		t.Errorf("debug record missing after SetLogLevel: %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Rendered 2 output(s)")

	if !regexp.MustCompile(`Rendered 2 output\(s\) \(\d+(\.\d+)?[µnm]?s\)`).Match(buf.Bytes()) {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}
