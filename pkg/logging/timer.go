package logging

import (
	"time"
)

// TimedOperation logs a message with the elapsed time once an operation ends
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since StartTimer
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

func (t *TimedOperation) with(extra ...Field) []Field {
	fields := make([]Field, 0, len(t.fields)+len(extra)+1)
	fields = append(fields, t.fields...)
	fields = append(fields, Latency(t.Elapsed()))
	return append(fields, extra...)
}

// End logs the operation at info level
func (t *TimedOperation) End(extra ...Field) {
	t.logger.Info(t.msg, t.with(extra...)...)
}

// EndError logs the operation as failed
func (t *TimedOperation) EndError(err error) {
	t.logger.Error(t.msg, t.with(Error(err))...)
}
