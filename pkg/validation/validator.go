package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	MaxHandleLength = 50
	MaxSeeds        = 1000
	MaxTop          = 1000
	MaxKeywords     = 100

	handlePattern = regexp.MustCompile(`^@?[A-Za-z0-9_.]+$`)
)

func init() {
	validate = validator.New()
}

// Struct validates v against its `validate` struct tags and returns the first
// failure in a readable form.
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateHandle checks an account handle, with or without the leading '@'
func ValidateHandle(handle string) error {
	if handle == "" || handle == "@" {
		return errors.New("handle cannot be empty")
	}
	if len(handle) > MaxHandleLength {
		return fmt.Errorf("handle '%s' exceeds maximum length of %d characters", handle, MaxHandleLength)
	}
	if !handlePattern.MatchString(handle) {
		return fmt.Errorf("handle '%s' contains invalid characters (only alphanumeric, underscore and dot allowed)", handle)
	}
	return nil
}

// ValidateID checks a numeric account ID given as text
func ValidateID(raw string) error {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("id '%s' is not an integer", raw)
	}
	if id <= 0 {
		return fmt.Errorf("id %d must be positive", id)
	}
	return nil
}

// ValidateSeeds checks a seed list: non-empty, bounded and without duplicates.
// Each seed is checked as an ID or a handle depending on byHandle.
func ValidateSeeds(seeds []string, byHandle bool) error {
	if len(seeds) == 0 {
		return errors.New("at least one seed is required")
	}
	if len(seeds) > MaxSeeds {
		return fmt.Errorf("maximum %d seeds allowed, got %d", MaxSeeds, len(seeds))
	}
	seen := make(map[string]struct{}, len(seeds))
	for i, s := range seeds {
		check := ValidateID
		if byHandle {
			check = ValidateHandle
		}
		if err := check(s); err != nil {
			return fmt.Errorf("seed %d: %w", i, err)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("seed %d: duplicate '%s'", i, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

// ValidateTop validates a requested ranking length
func ValidateTop(top int) error {
	if top < 0 {
		return fmt.Errorf("top must be at least 0, got %d", top)
	}
	if top > MaxTop {
		return fmt.Errorf("top must not exceed %d, got %d", MaxTop, top)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "required_if":
			return fmt.Errorf("%s: field is required when %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
