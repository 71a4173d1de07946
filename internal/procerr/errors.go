// Package procerr defines the fault channel shared by the axis normalization
// packages. Structural faults wrap ErrInvalidState, the same sentinel the
// structural pass uses for any unrecoverable pass-level failure, so callers
// can abort a pass with a single errors.Is check.
package procerr

import (
	"errors"
	"fmt"
)

// ErrInvalidState signals that the current processing pass cannot continue.
var ErrInvalidState = errors.New("invalid processing state")

// ConfigError reports an invalid configuration detected at construction time
// or on first use, such as a nil field list or mismatched key arity.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid configuration for %q: %s", e.Field, e.Reason)
}

// StructureError reports input that violates the ordering contract of the
// selected normalization algorithm.
type StructureError struct {
	Op     string
	Key    fmt.Stringer
	Reason string
}

// Error implements the error interface for StructureError.
func (e *StructureError) Error() string {
	if e.Key == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s (key %s)", e.Op, e.Reason, e.Key)
}

// Unwrap ties every structural fault to ErrInvalidState.
func (e *StructureError) Unwrap() error {
	return ErrInvalidState
}

// Structure is a shorthand for building a StructureError.
func Structure(op string, key fmt.Stringer, format string, args ...any) error {
	return &StructureError{Op: op, Key: key, Reason: fmt.Sprintf(format, args...)}
}

// Config is a shorthand for building a ConfigError.
func Config(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
