/*
errors.go - Error types for the projection engine

PURPOSE:
  The engine has exactly one failure surface: a bad configuration,
  rejected synchronously before any simulation work begins. Everything
  the simulation itself can produce - zero revenue, negative net income,
  a cash balance below zero - is a valid projection outcome, not an
  error, and is reported faithfully.

USAGE:
  Callers branch with errors.Is / errors.As:

    if _, err := engine.Simulate(cfg); err != nil {
        var cfgErr *engine.ConfigurationError
        if errors.As(err, &cfgErr) {
            // surface cfgErr.Field / cfgErr.Reason to the user
        }
    }

SEE ALSO:
  - validate.go: Where ConfigurationError is raised
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

// ErrInvalidConfig is the sentinel wrapped by every ConfigurationError.
var ErrInvalidConfig = errors.New("invalid projection configuration")

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigurationError names the config field that failed validation and why.
// It is raised before any record is produced; the engine has no
// partial-failure mode.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfig
}

// IsClientError returns true if the error is due to invalid caller input.
// API layers use this to map errors to 4xx responses.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
