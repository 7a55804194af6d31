package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelDebug)

	logger := slog.New(newConsoleHandler(&buf, lvl))
	logger = NewComponentLogger(logger, "worker")
	logger.Info("scored batch", Int("comments", 3), String("note", "all clean"))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "INFO worker: scored batch") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "comments=3") {
		t.Errorf("missing comments attr in %q", line)
	}
	if !strings.Contains(line, `note="all clean"`) {
		t.Errorf("missing quoted attr in %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)

	logger := slog.New(newConsoleHandler(&buf, lvl))
	logger.Info("should be dropped")
	logger.Warn("should be kept")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Errorf("info record leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "should be kept") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestConsoleHandlerGroupsFlattenToDottedKeys(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)

	logger := slog.New(newConsoleHandler(&buf, lvl))
	logger.Info("saved", slog.Group("store", slog.Int("sessions", 2)))

	if !strings.Contains(buf.String(), "store.sessions=2") {
		t.Fatalf("expected dotted group key, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got != slog.LevelInfo {
		t.Fatalf("parseLevel(nonsense) = %v, want info", got)
	}
	if got := parseLevel(""); got != slog.LevelInfo {
		t.Fatalf("parseLevel(empty) = %v, want info", got)
	}
	if got := parseLevel("DEBUG"); got != slog.LevelDebug {
		t.Fatalf("parseLevel(DEBUG) = %v, want debug", got)
	}
}

func TestNoopHandlerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop logger should report disabled at every level")
	}
}
