// Package errs defines the terminal error types reviewbot can exit with.
//
// Every error here aborts the run: nothing is retried, and the CLI maps any
// of them to exit code 1 after printing a diagnostic.
package errs

import (
	"errors"
	"fmt"
)

// ResolutionError means the pull request under review could not be
// determined from the CI environment.
type ResolutionError struct {
	Reason string
}

func (e *ResolutionError) Error() string {
	return "cannot determine pull request: " + e.Reason
}

// RetrievalError means the diff could not be obtained by any path.
type RetrievalError struct {
	Op     string
	Stderr string
	Err    error
}

func (e *RetrievalError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("fetching diff (%s): %v: %s", e.Op, e.Err, e.Stderr)
	}
	return fmt.Sprintf("fetching diff (%s): %v", e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// ConfigurationError means a required environment variable is missing.
type ConfigurationError struct {
	Variable string
}

func (e *ConfigurationError) Error() string {
	return e.Variable + " environment variable is not set"
}

// ReviewServiceError means the completion request failed.
type ReviewServiceError struct {
	Reason string
	Err    error
}

func (e *ReviewServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("review service: %s: %v", e.Reason, e.Err)
	}
	return "review service: " + e.Reason
}

func (e *ReviewServiceError) Unwrap() error { return e.Err }

// PublishError means the review comment could not be posted.
type PublishError struct {
	Stderr string
	Err    error
}

func (e *PublishError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("posting comment: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("posting comment: %v", e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// IsConfiguration checks whether err is a missing-configuration failure.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsResolution checks whether err is a PR resolution failure.
func IsResolution(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}
