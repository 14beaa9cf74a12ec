package logging

import (
	"time"
)

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Duration is rendered with time.Duration.String
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Error renders err as its message; a nil error yields a null field
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Component(name string) Field {
	return String("component", name)
}

// Relation tags a log line with the graph it concerns (connections, reshares, ...)
func Relation(name string) Field {
	return String("relation", name)
}

// UserID tags a log line with an account ID
func UserID(id int64) Field {
	return Int64("user_id", id)
}

// Seed tags a log line with a raw seed identifier
func Seed(identifier string) Field {
	return String("seed", identifier)
}

// RunID tags a log line with the analysis session ID
func RunID(id string) Field {
	return String("run_id", id)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
