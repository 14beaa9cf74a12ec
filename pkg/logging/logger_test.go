package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, level Level) *JSONLogger {
	l := NewJSONLogger(buf, level)
	l.now = func() time.Time { return time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC) }
	return l
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e map[string]any
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{" info ", InfoLevel},
		{"Warn", WarnLevel},
		{"warning", WarnLevel},
		{"ERROR", ErrorLevel},
		{"verbose", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}

	if Level(42).String() != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN for an out of range level")
	}
}

func TestJSONLogger_FlatEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf, InfoLevel)

	logger.Info("graph built",
		Relation("reshares"),
		Int("nodes", 3),
		Error(errors.New("boom")),
	)

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e["time"] != "2021-03-01T10:00:00Z" {
		t.Errorf("Unexpected time %v", e["time"])
	}
	if e["level"] != "INFO" || e["msg"] != "graph built" {
		t.Errorf("Unexpected level/msg: %v %v", e["level"], e["msg"])
	}
	if e["relation"] != "reshares" || e["nodes"] != 3.0 || e["error"] != "boom" {
		t.Errorf("Fields not flattened: %v", e)
	}
}

func TestJSONLogger_ReservedKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf, InfoLevel)

	logger.Info("export written", String("msg", "shadow"), String("level", "nope"))

	e := decodeLines(t, &buf)[0]
	if e["msg"] != "export written" || e["level"] != "INFO" {
		t.Errorf("Reserved keys overwritten: %v", e)
	}
	if e["field.msg"] != "shadow" || e["field.level"] != "nope" {
		t.Errorf("Expected renamed fields, got %v", e)
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf, WarnLevel)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries at WARN, got %d", len(entries))
	}
	if entries[0]["level"] != "WARN" || entries[1]["level"] != "ERROR" {
		t.Errorf("Unexpected levels: %v %v", entries[0]["level"], entries[1]["level"])
	}
	if logger.Enabled(InfoLevel) || !logger.Enabled(ErrorLevel) {
		t.Error("Enabled disagrees with the configured level")
	}
}

func TestJSONLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := fixedLogger(&buf, InfoLevel)
	child := root.With(Component("analyzer"), RunID("run-1"))
	grandchild := child.With(Relation("mentions"))

	grandchild.Info("metrics computed")
	root.SetLevel(ErrorLevel)
	grandchild.Info("suppressed")
	child.Error("failed", Operation("TopNodes"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	first := entries[0]
	if first["component"] != "analyzer" || first["run_id"] != "run-1" || first["relation"] != "mentions" {
		t.Errorf("Inherited fields missing: %v", first)
	}
	if _, ok := entries[1]["relation"]; ok {
		t.Errorf("Child fields leaked into the parent: %v", entries[1])
	}
	if entries[1]["operation"] != "TopNodes" {
		t.Errorf("Expected operation field, got %v", entries[1])
	}
}

func TestJSONLogger_ConcurrentLines(t *testing.T) {
	var buf bytes.Buffer
	root := fixedLogger(&buf, InfoLevel)

	var wg sync.WaitGroup
	for _, rel := range []string{"connections", "reshares", "mentions", "favorites", "comments"} {
		wg.Add(1)
		go func(l Logger) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l.Info("metric computed", Int("i", i))
			}
		}(root.With(Relation(rel)))
	}
	wg.Wait()

	if got := len(decodeLines(t, &buf)); got != 250 {
		t.Errorf("Expected 250 intact lines, got %d", got)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf, InfoLevel)

	StartTimer(logger, "analysis complete", Count(2)).End(String("status", "ok"))
	StartTimer(logger, "analysis complete").EndError(errors.New("cancelled"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0]["count"] != 2.0 || entries[0]["status"] != "ok" {
		t.Errorf("Unexpected fields: %v", entries[0])
	}
	if _, ok := entries[0]["latency"]; !ok {
		t.Error("Expected latency field")
	}
	if entries[1]["level"] != "ERROR" || entries[1]["error"] != "cancelled" {
		t.Errorf("Unexpected error entry: %v", entries[1])
	}
}

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		field Field
		key   string
		value any
	}{
		{UserID(7), "user_id", int64(7)},
		{Seed("@alice"), "seed", "@alice"},
		{Path("/tmp/x.json"), "path", "/tmp/x.json"},
		{Duration("took", 1500*time.Millisecond), "took", "1.5s"},
		{Error(nil), "error", nil},
		{Float64("modularity", 0.25), "modularity", 0.25},
	}
	for _, tt := range tests {
		if tt.field.Key != tt.key || tt.field.Value != tt.value {
			t.Errorf("Expected %s=%v, got %s=%v", tt.key, tt.value, tt.field.Key, tt.field.Value)
		}
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger().With(Component("x"))
	l.Error("ignored")
	if l.Enabled(ErrorLevel) {
		t.Error("NopLogger should never be enabled")
	}
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(fixedLogger(&buf, DebugLevel))
	t.Cleanup(func() { SetDefaultLogger(NewNopLogger()) })

	DefaultLogger().Debug("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("Expected the replaced logger to be used, got %q", buf.String())
	}
}
