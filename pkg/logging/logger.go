// Package logging provides the JSON line logger used across the analysis.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// LevelEnv names the environment variable read by DefaultLogger
const LevelEnv = "SOCIAL_LOG_LEVEL"

// output is shared by a logger and all of its children so that lines written
// from concurrent metric workers never interleave.
type output struct {
	mu sync.Mutex
	w  io.Writer
}

// JSONLogger writes one JSON object per line. Fields are flattened next to
// time, level and msg.
type JSONLogger struct {
	out    *output
	level  *atomic.Int32
	fields []Field
	now    func() time.Time
}

// NewJSONLogger creates a logger writing entries at or above level to w
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	l := &JSONLogger{
		out:   &output{w: w},
		level: new(atomic.Int32),
		now:   time.Now,
	}
	l.level.Store(int32(level))
	return l
}

// Enabled reports whether entries at level are written
func (l *JSONLogger) Enabled(level Level) bool {
	return level >= Level(l.level.Load())
}

// SetLevel changes the minimum level of the logger and every child created from it
func (l *JSONLogger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *JSONLogger) log(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}

	entry := make(map[string]any, 3+len(l.fields)+len(fields))
	for _, f := range l.fields {
		entry[fieldKey(f.Key)] = f.Value
	}
	for _, f := range fields {
		entry[fieldKey(f.Key)] = f.Value
	}
	entry[TimeKey] = l.now().UTC().Format(time.RFC3339Nano)
	entry[LevelKey] = level.String()
	entry[MessageKey] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		data = fmt.Appendf(nil, `{%q:%q,%q:%q,%q:%q}`,
			LevelKey, ErrorLevel.String(), MessageKey, "unencodable log entry", "error", err.Error())
	}
	data = append(data, '\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	_, _ = l.out.w.Write(data)
}

func fieldKey(key string) string {
	switch key {
	case TimeKey, LevelKey, MessageKey:
		return "field." + key
	default:
		return key
	}
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// With returns a child sharing the writer and the level
func (l *JSONLogger) With(fields ...Field) Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &JSONLogger{
		out:    l.out,
		level:  l.level,
		fields: merged,
		now:    l.now,
	}
}

var defaultLogger atomic.Pointer[Logger]

// DefaultLogger returns the process-wide logger. Until SetDefaultLogger is
// called it writes to stderr at the level named by SOCIAL_LOG_LEVEL; stdout is
// left to report output.
func DefaultLogger() Logger {
	if l := defaultLogger.Load(); l != nil {
		return *l
	}
	var l Logger = NewJSONLogger(os.Stderr, ParseLevel(os.Getenv(LevelEnv)))
	if defaultLogger.CompareAndSwap(nil, &l) {
		return l
	}
	return *defaultLogger.Load()
}

// SetDefaultLogger replaces the process-wide logger
func SetDefaultLogger(logger Logger) {
	defaultLogger.Store(&logger)
}
