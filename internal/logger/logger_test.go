package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newBufLogger(level LogLevel, format LogFormat) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Format: format, Output: &buf, Component: "panel"})
	l.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return l, &buf
}

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  int
	}{
		{DEBUG, 4},
		{INFO, 3},
		{WARN, 2},
		{ERROR, 1},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			l, buf := newBufLogger(tt.level, JSONFormat)
			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e", nil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != tt.want {
				t.Errorf("got %d lines, want %d", len(lines), tt.want)
			}
		})
	}
}

func TestJSONEntry(t *testing.T) {
	l, buf := newBufLogger(INFO, JSONFormat)
	l.Error("destroy failed", errors.New("boom"), Fields{"slot": "tipo"})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("level = %q", entry.Level)
	}
	if entry.Component != "panel" {
		t.Errorf("component = %q", entry.Component)
	}
	if entry.Error != "boom" {
		t.Errorf("error = %q", entry.Error)
	}
	if entry.Fields["slot"] != "tipo" {
		t.Errorf("fields = %v", entry.Fields)
	}
	if entry.Timestamp != "2024-03-01T12:00:00Z" {
		t.Errorf("timestamp = %q", entry.Timestamp)
	}
}

func TestTextFieldsSorted(t *testing.T) {
	l, buf := newBufLogger(INFO, TextFormat)
	l.Info("mounted", Fields{"zeta": 1, "alpha": 2})

	out := buf.String()
	if !strings.HasPrefix(out, "[2024-03-01T12:00:00Z] INFO [panel] mounted alpha=2 zeta=1") {
		t.Errorf("unexpected text line: %q", out)
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Errorf("caller missing from %q", out)
	}
}

func TestWithBindsFields(t *testing.T) {
	l, buf := newBufLogger(INFO, JSONFormat)
	child := l.With(Fields{"request": "r1"}).WithComponent("charts")
	child.Info("hello", Fields{"slot": "turno"})
	l.Info("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	var first, second LogEntry
	_ = json.Unmarshal([]byte(lines[0]), &first)
	_ = json.Unmarshal([]byte(lines[1]), &second)

	if first.Component != "charts" || first.Fields["request"] != "r1" || first.Fields["slot"] != "turno" {
		t.Errorf("child entry = %+v", first)
	}
	if second.Component != "panel" || len(second.Fields) != 0 {
		t.Errorf("parent picked up child state: %+v", second)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if lv, ok := ParseLevel("warning"); !ok || lv != WARN {
		t.Errorf("ParseLevel(warning) = %v, %v", lv, ok)
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Error("ParseLevel accepted an unknown level")
	}
	if f, ok := ParseFormat("JSON"); !ok || f != JSONFormat {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, ok)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l.Enabled(FATAL) {
		t.Error("discard logger should not be enabled at any level")
	}
	l.Error("ignored", errors.New("x"))
}
