package validation

import (
	"errors"
	"fmt"
	"time"
)

// FieldError is one failed rule of a configuration section
type FieldError struct {
	Path    string // section.field, e.g. "config.analysis.top"
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return e.Path + ": " + e.Err.Error()
	}
	return e.Path + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ConfigValidator checks the cross-field rules of a configuration section that
// struct tags cannot express. It collects every failure instead of stopping at
// the first one.
type ConfigValidator struct {
	section string
	errs    []*FieldError
}

// NewConfigValidator creates a validator whose error paths start with section
func NewConfigValidator(section string) *ConfigValidator {
	return &ConfigValidator{section: section}
}

func (cv *ConfigValidator) fail(field string, err error, format string, args ...any) {
	cv.errs = append(cv.errs, &FieldError{
		Path:    cv.section + "." + field,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	})
}

// Required rejects an empty string
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if value == "" {
		cv.fail(field, nil, "required field is empty")
	}
	return cv
}

// RangeInt rejects values outside [lo, hi]
func (cv *ConfigValidator) RangeInt(field string, value, lo, hi int) *ConfigValidator {
	if value < lo || value > hi {
		cv.fail(field, nil, "value %d is outside range [%d, %d]", value, lo, hi)
	}
	return cv
}

// MinDuration rejects durations below floor
func (cv *ConfigValidator) MinDuration(field string, value, floor time.Duration) *ConfigValidator {
	if value < floor {
		cv.fail(field, nil, "duration %v is below minimum %v", value, floor)
	}
	return cv
}

// Positive rejects values <= 0
func (cv *ConfigValidator) Positive(field string, value int) *ConfigValidator {
	if value <= 0 {
		cv.fail(field, nil, "value %d must be positive", value)
	}
	return cv
}

// PositiveFloat rejects values <= 0
func (cv *ConfigValidator) PositiveFloat(field string, value float64) *ConfigValidator {
	if value <= 0 {
		cv.fail(field, nil, "value %g must be positive", value)
	}
	return cv
}

// Custom records the error returned by fn, wrapped with the field path
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.fail(field, err, "")
	}
	return cv
}

// When runs rules only if cond holds
func (cv *ConfigValidator) When(cond bool, rules func(*ConfigValidator)) *ConfigValidator {
	if cond {
		rules(cv)
	}
	return cv
}

// Failures returns the collected field errors in rule order
func (cv *ConfigValidator) Failures() []*FieldError {
	return cv.errs
}

// Validate joins the collected errors, or returns nil
func (cv *ConfigValidator) Validate() error {
	if len(cv.errs) == 0 {
		return nil
	}
	errs := make([]error, len(cv.errs))
	for i, e := range cv.errs {
		errs[i] = e
	}
	return errors.Join(errs...)
}
