package validation

import (
	"reflect"
	"strings"
	"time"

	tferrors "github.com/vnykmshr/tickflow/pkg/common/errors"
)

// ValidatePositiveDuration validates that a duration is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositiveDuration(module, field string, value time.Duration) error {
	if value <= 0 {
		return tferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegativeDuration validates that a duration is non-negative (>= 0).
// Returns a ValidationError if the value is negative.
func ValidateNonNegativeDuration(module, field string, value time.Duration) error {
	if value < 0 {
		return tferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 to disable or a positive value")
	}
	return nil
}

// ValidateCallable validates that value holds a non-nil function.
// A typed nil function stored in an interface is rejected as well.
func ValidateCallable(module, field string, value interface{}) error {
	if value == nil {
		return tferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Func {
		return tferrors.NewValidationError(module, field, v.Type().String(), "is not callable").
			WithHint("provide a function value")
	}
	if v.IsNil() {
		return tferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return tferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidateOneOf validates that value is one of allowed.
func ValidateOneOf(module, field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return tferrors.NewValidationError(module, field, value, "is not supported").
		WithHint("use one of: " + strings.Join(allowed, ", "))
}
