package engine

import (
	"errors"
	"fmt"
)

// RunError represents an error detected while executing or verifying a run.
//
// Run errors include:
//   - Budget exceeded: Total clicks went over the configured cap
//   - Run not found: Referenced run token has no stored record
//   - No store: Operation needs a history store the engine lacks
//
// RunError includes structured fields for diagnostics and recovery.
type RunError struct {
	// Code identifies the error category.
	Code RunErrorCode

	// Message is a human-readable description.
	Message string

	// RunToken identifies the affected run, when one was assigned.
	RunToken string

	// Details contains additional context.
	Details map[string]string
}

// RunErrorCode categorizes run errors.
type RunErrorCode string

const (
	// ErrCodeBudgetExceeded indicates the run's total click count went
	// over the configured budget.
	ErrCodeBudgetExceeded RunErrorCode = "CLICK_BUDGET_EXCEEDED"

	// ErrCodeRunNotFound indicates a referenced run token has no stored record.
	ErrCodeRunNotFound RunErrorCode = "RUN_NOT_FOUND"

	// ErrCodeNoStore indicates an operation required a history store but
	// the engine was built without one.
	ErrCodeNoStore RunErrorCode = "NO_STORE"
)

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.RunToken != "" {
		return fmt.Sprintf("%s: %s (run=%s)", e.Code, e.Message, e.RunToken)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsBudgetError returns true if the error is a click budget error.
// Uses errors.As to handle wrapped errors.
func IsBudgetError(err error) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == ErrCodeBudgetExceeded
	}
	return false
}

// IsRunNotFound returns true if the error reports a missing stored run.
// Uses errors.As to handle wrapped errors.
func IsRunNotFound(err error) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == ErrCodeRunNotFound
	}
	return false
}

// NewBudgetError creates a RunError for an exceeded click budget.
func NewBudgetError(runToken string, clicks, maxClicks int64) *RunError {
	return &RunError{
		Code:     ErrCodeBudgetExceeded,
		Message:  fmt.Sprintf("run exceeded click budget (%d > %d)", clicks, maxClicks),
		RunToken: runToken,
		Details: map[string]string{
			"clicks":     fmt.Sprintf("%d", clicks),
			"max_clicks": fmt.Sprintf("%d", maxClicks),
		},
	}
}
