package analysis

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/logging"
	"github.com/dd0wney/cluso-social/pkg/metrics"
)

// Warning is a non-fatal condition recorded during a run, such as a clamped top-k
// or a power iteration that did not converge.
type Warning struct {
	Op       string
	Relation string
	Message  string
	At       time.Time
}

func (w Warning) String() string {
	if w.Relation == "" {
		return fmt.Sprintf("%s: %s", w.Op, w.Message)
	}
	return fmt.Sprintf("%s %s: %s", w.Op, w.Relation, w.Message)
}

// Session carries the per-run state shared by the analysis components: the run ID,
// the logger, an optional metrics registry and the warnings collector.
// Metric goroutines record warnings concurrently, so the collector is locked.
type Session struct {
	ID        string
	StartedAt time.Time

	logger  logging.Logger
	metrics *metrics.Registry

	mu       sync.Mutex
	warnings []Warning
}

// NewSession starts a run. A nil logger discards output; a nil registry disables metrics.
func NewSession(logger logging.Logger, registry *metrics.Registry) *Session {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	id := uuid.NewString()
	return &Session{
		ID:        id,
		StartedAt: time.Now(),
		logger:    logger.With(logging.RunID(id)),
		metrics:   registry,
	}
}

// Logger returns the run-scoped logger
func (s *Session) Logger() logging.Logger {
	return s.logger
}

// Metrics returns the registry, or nil
func (s *Session) Metrics() *metrics.Registry {
	return s.metrics
}

// Warn records a warning and logs it
func (s *Session) Warn(op string, rel graph.Relation, format string, args ...any) {
	w := Warning{
		Op:       op,
		Relation: rel.String(),
		Message:  fmt.Sprintf(format, args...),
		At:       time.Now(),
	}

	s.mu.Lock()
	s.warnings = append(s.warnings, w)
	s.mu.Unlock()

	s.logger.Warn(w.Message, logging.Operation(op), logging.Relation(w.Relation))
	if s.metrics != nil {
		s.metrics.RecordWarning()
	}
}

// Warnings returns a copy of the warnings recorded so far
func (s *Session) Warnings() []Warning {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}
