package harness

import (
	"fmt"
	"strings"

	"github.com/safedial/safedial/internal/dial"
)

// AssertionError is returned when a pinned expectation fails.
// It includes the full rotation path to help debug the failure.
type AssertionError struct {
	Field    string      // Expectation field for categorization
	Expected string      // Human-readable expected outcome
	Actual   string      // Human-readable actual outcome
	Steps    []dial.Step // Full rotation path for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	// Header with the failed field
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Field)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	// Full rotation path for context
	if len(e.Steps) > 0 {
		fmt.Fprintf(&buf, "\nRotation path:\n")
		for _, s := range e.Steps {
			fmt.Fprintf(&buf, "  [%d] %s %d -> %d (zero hits %d)\n",
				s.Seq, s.Command, s.From, s.To, s.ClickZeroHits)
		}
	}

	return buf.String()
}

// checkExpectations compares every pinned expectation against the
// computed trace and records a detailed error for each mismatch.
func checkExpectations(result *Result, expect Expect, trace *dial.Trace) {
	if expect.EndOfRotation != nil && *expect.EndOfRotation != int64(trace.EndOfRotation) {
		result.AddError((&AssertionError{
			Field:    "end_of_rotation",
			Expected: fmt.Sprintf("%d", *expect.EndOfRotation),
			Actual:   fmt.Sprintf("%d", trace.EndOfRotation),
			Steps:    trace.Steps,
		}).Error())
	}

	if expect.EveryClick != nil && *expect.EveryClick != int64(trace.EveryClick) {
		result.AddError((&AssertionError{
			Field:    "every_click",
			Expected: fmt.Sprintf("%d", *expect.EveryClick),
			Actual:   fmt.Sprintf("%d", trace.EveryClick),
			Steps:    trace.Steps,
		}).Error())
	}

	if expect.FinalPosition != nil && *expect.FinalPosition != trace.Final {
		result.AddError((&AssertionError{
			Field:    "final_position",
			Expected: fmt.Sprintf("%d", *expect.FinalPosition),
			Actual:   fmt.Sprintf("%d", trace.Final),
			Steps:    trace.Steps,
		}).Error())
	}
}
