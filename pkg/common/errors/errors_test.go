package errors

import (
	"errors"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrClosed", ErrClosed, "resource is closed"},
		{"ErrTimeout", ErrTimeout, "operation timed out"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
		{"ErrDelegation", ErrDelegation, "event loop rejected timer operation"},
		{"ErrCallbackPanicked", ErrCallbackPanicked, "callback panicked"},
		{"ErrAlreadyRunning", ErrAlreadyRunning, "already running"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "scheduler",
				Field:  "interval",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "scheduler: invalid interval=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "scheduler",
				Field:  "interval",
				Value:  0,
				Reason: "must be positive",
				Hint:   "use a value of at least one second",
			},
			want: "scheduler: invalid interval=0 (must be positive) - use a value of at least one second",
		},
		{
			name: "nil value",
			err: &ValidationError{
				Module: "scheduler",
				Field:  "callback",
				Value:  nil,
				Reason: "cannot be nil",
			},
			want: "scheduler: invalid callback=<nil> (cannot be nil)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := NewValidationError("test", "field", 0, "test")

	if unwrapped := verr.Unwrap(); unwrapped != ErrInvalidConfiguration {
		t.Errorf("Unwrap() = %v, want ErrInvalidConfiguration", unwrapped)
	}
	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("ValidationError should wrap ErrInvalidConfiguration")
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try using a positive value")

	if err.Hint != "try using a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try using a positive value")
	}

	// Should return same instance for chaining
	if result := err.WithHint("new hint"); result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without context",
			err:  NewOperationError("scheduler", "AddTimer", errors.New("loop closed")),
			want: "scheduler.AddTimer failed: loop closed",
		},
		{
			name: "with context",
			err: NewOperationError("scheduler", "Callback", errors.New("boom")).
				WithContext("interval=2s persistent=true"),
			want: "scheduler.Callback failed: boom (interval=2s persistent=true)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	opErr := NewOperationError("test", "test", cause)

	if unwrapped := opErr.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(opErr, cause) {
		t.Error("OperationError should wrap the cause error")
	}
}

func TestIsTemporary(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout error", ErrTimeout, true},
		{"delegation error", ErrDelegation, true},
		{"closed error", ErrClosed, false},
		{"wrapped delegation", &OperationError{Cause: ErrDelegation}, true},
		{"random error", errors.New("random"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTemporary(tt.err); got != tt.want {
				t.Errorf("IsTemporary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&OperationError{Cause: ErrTimeout}) {
		t.Error("wrapped timeout should be retryable")
	}
	if IsRetryable(ErrDelegation) {
		t.Error("delegation failures are not retried")
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation error", NewValidationError("test", "field", 0, "test"), true},
		{
			"wrapped validation error",
			&OperationError{Cause: NewValidationError("test", "field", 0, "test")},
			true,
		},
		{"operation error", &OperationError{Cause: errors.New("test")}, false},
		{"standard error", errors.New("test"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}
