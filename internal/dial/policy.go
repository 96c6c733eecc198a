package dial

import "fmt"

// Policy selects how zero crossings are counted while applying commands.
type Policy int

const (
	// PolicyEndOfRotation counts a zero only when a completed rotation
	// leaves the dial at 0: at most one count per command.
	PolicyEndOfRotation Policy = iota
	// PolicyEveryClick counts every single click that lands on 0, so a
	// large rotation can count once per revolution.
	PolicyEveryClick
)

// ParsePolicy maps a policy name to its Policy. Accepted forms are the
// short flag values "end" and "click" and the long names
// "end-of-rotation" and "every-click".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "end", "end-of-rotation":
		return PolicyEndOfRotation, nil
	case "click", "every-click":
		return PolicyEveryClick, nil
	default:
		return 0, fmt.Errorf("unknown counting policy %q: must be \"end\" or \"click\"", s)
	}
}

// String returns the long policy name.
func (p Policy) String() string {
	if p == PolicyEveryClick {
		return "every-click"
	}
	return "end-of-rotation"
}

// IsValid reports whether p is one of the two defined policies.
func (p Policy) IsValid() bool {
	return p == PolicyEndOfRotation || p == PolicyEveryClick
}
