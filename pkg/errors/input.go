package errors

import (
	"fmt"
	"strings"
)

// ConfigError reports missing or invalid configuration, such as tracker
// credentials that are not set.
type ConfigError struct {
	Component string
	Message   string
	Missing   []string
	Err       error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Component != "" {
		b.WriteString(" in " + e.Component)
	}
	b.WriteString(": " + e.Message)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, " (missing: %v)", e.Missing)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// ValidationError rejects a single value.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// NewValidationError builds a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return "validation failed for field " + e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ReconcileError is a per-issue failure. It never aborts a batch.
type ReconcileError struct {
	Source    string
	SourceKey string
	Err       error
}

func (e *ReconcileError) Error() string {
	issue := e.Source + " issue"
	if e.SourceKey != "" {
		issue += " " + e.SourceKey
	}
	return fmt.Sprintf("reconcile %s: %v", issue, e.Err)
}

func (e *ReconcileError) Unwrap() error { return e.Err }
