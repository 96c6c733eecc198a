package dial

import (
	"errors"
	"fmt"
)

// UnsupportedDirectionError reports a direction character that is neither
// 'L' nor 'R'.
type UnsupportedDirectionError struct {
	// Direction is the offending rune.
	Direction rune
}

func (e *UnsupportedDirectionError) Error() string {
	return fmt.Sprintf("unsupported direction '%c'", e.Direction)
}

// EmptyInputError reports a command line that is empty after trimming.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "empty input"
}

// InvalidDirectionError reports a command line whose first character is not
// a valid direction. It retains the full trimmed input, the offending
// character, and wraps the underlying direction error.
type InvalidDirectionError struct {
	Input     string
	Direction rune
	Err       error
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("invalid direction '%c' in '%s'", e.Direction, e.Input)
}

func (e *InvalidDirectionError) Unwrap() error {
	return e.Err
}

// MissingDistanceError reports a command line with a valid direction
// character but nothing after it.
type MissingDistanceError struct {
	Input string
}

func (e *MissingDistanceError) Error() string {
	return fmt.Sprintf("missing distance in '%s'", e.Input)
}

// InvalidDistanceError reports a distance substring that is not a valid
// non-negative integer literal or overflows the 32-bit width. It retains
// the full trimmed input, the raw distance substring, and wraps the
// numeric parse error as the nested cause.
type InvalidDistanceError struct {
	Input    string
	Distance string
	Err      error
}

func (e *InvalidDistanceError) Error() string {
	return fmt.Sprintf("invalid distance '%s' in '%s'", e.Distance, e.Input)
}

func (e *InvalidDistanceError) Unwrap() error {
	return e.Err
}

// IsEmptyInput reports whether err is an EmptyInputError.
// Uses errors.As to handle wrapped errors.
func IsEmptyInput(err error) bool {
	var e *EmptyInputError
	return errors.As(err, &e)
}

// IsInvalidDirection reports whether err is an InvalidDirectionError.
// Uses errors.As to handle wrapped errors.
func IsInvalidDirection(err error) bool {
	var e *InvalidDirectionError
	return errors.As(err, &e)
}

// IsMissingDistance reports whether err is a MissingDistanceError.
// Uses errors.As to handle wrapped errors.
func IsMissingDistance(err error) bool {
	var e *MissingDistanceError
	return errors.As(err, &e)
}

// IsInvalidDistance reports whether err is an InvalidDistanceError.
// Uses errors.As to handle wrapped errors.
func IsInvalidDistance(err error) bool {
	var e *InvalidDistanceError
	return errors.As(err, &e)
}
