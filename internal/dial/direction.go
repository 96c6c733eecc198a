package dial

// Direction is the turning direction of a rotation command.
type Direction int

const (
	// Left turns the dial toward lower numbers.
	Left Direction = iota
	// Right turns the dial toward higher numbers.
	Right
)

// ParseDirection maps a direction character to its Direction.
// 'R' is Right and 'L' is Left; any other rune fails with
// *UnsupportedDirectionError carrying the offending rune.
func ParseDirection(r rune) (Direction, error) {
	switch r {
	case 'R':
		return Right, nil
	case 'L':
		return Left, nil
	default:
		return 0, &UnsupportedDirectionError{Direction: r}
	}
}

// Literal returns the canonical one-character form: "L" or "R".
func (d Direction) Literal() string {
	if d == Right {
		return "R"
	}
	return "L"
}

// String implements fmt.Stringer using the canonical literal.
func (d Direction) String() string {
	return d.Literal()
}

// Delta returns the position change of a single click in this direction:
// +1 for Right, -1 for Left.
func (d Direction) Delta() int {
	if d == Right {
		return 1
	}
	return -1
}

// IsValid reports whether d is one of the two defined directions.
func (d Direction) IsValid() bool {
	return d == Left || d == Right
}
