package dial

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// RotationCommand is one parsed instruction: a direction and a
// non-negative click distance. The sign of the movement is carried by
// the direction, never by the distance.
type RotationCommand struct {
	Direction Direction
	Distance  int32
}

// ParseRotationCommand parses one input line of the form [LR][0-9]+.
//
// The line is trimmed first. Failures, in order of detection:
//   - *EmptyInputError: nothing left after trimming
//   - *InvalidDirectionError: first character is not 'L' or 'R'
//     (wraps *UnsupportedDirectionError)
//   - *MissingDistanceError: nothing after the direction character
//   - *InvalidDistanceError: remainder is not a non-negative decimal
//     literal representable in 32 bits (wraps the strconv cause)
func ParseRotationCommand(line string) (RotationCommand, error) {
	input := strings.TrimSpace(line)
	if input == "" {
		return RotationCommand{}, &EmptyInputError{}
	}

	dirRune, size := utf8.DecodeRuneInString(input)
	direction, err := ParseDirection(dirRune)
	if err != nil {
		return RotationCommand{}, &InvalidDirectionError{
			Input:     input,
			Direction: dirRune,
			Err:       err,
		}
	}

	distanceStr := input[size:]
	if distanceStr == "" {
		return RotationCommand{}, &MissingDistanceError{Input: input}
	}

	// ParseUint with bitSize 31 enforces the [0-9]+ grammar exactly:
	// no sign prefix, and values above the signed 32-bit range are
	// range errors rather than silent wraps.
	distance, err := strconv.ParseUint(distanceStr, 10, 31)
	if err != nil {
		return RotationCommand{}, &InvalidDistanceError{
			Input:    input,
			Distance: distanceStr,
			Err:      err,
		}
	}

	return RotationCommand{Direction: direction, Distance: int32(distance)}, nil
}

// String renders the canonical form <direction><distance>, e.g. "R12" or
// "L21". For well-formed non-negative literals without leading zeros this
// is the exact inverse of ParseRotationCommand.
func (c RotationCommand) String() string {
	return c.Direction.Literal() + strconv.FormatInt(int64(c.Distance), 10)
}

// Delta returns the signed total displacement of the command in clicks.
func (c RotationCommand) Delta() int {
	return c.Direction.Delta() * int(c.Distance)
}
