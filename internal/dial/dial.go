package dial

import "fmt"

const (
	// Positions is the number of positions on the dial, 0 through 99.
	Positions = 100
	// Start is the position the arrow points at before any rotation.
	Start = 50
)

// Dial is the simulator state: the current arrow position and the number
// of zero crossings counted so far. A Dial is exclusively owned by its
// call site; it is not safe for concurrent use and does not need to be.
type Dial struct {
	position  int
	zeroCount uint64
}

// NewDial returns a dial pointing at Start with a zero count of 0.
func NewDial() *Dial {
	return &Dial{position: Start}
}

// normalize maps any integer to its representative in [0, Positions-1]
// using mathematical modulo: the result is never negative, so
// normalize(-1) is 99.
func normalize(x int) int {
	return ((x % Positions) + Positions) % Positions
}

// ApplyEndOfRotation applies one command under the end-of-rotation policy:
// the full displacement lands at once and the zero count increments by at
// most 1, only if the final position is 0.
func (d *Dial) ApplyEndOfRotation(cmd RotationCommand) {
	d.position = normalize(d.position + cmd.Delta())
	if d.position == 0 {
		d.zeroCount++
	}
}

// ApplyEveryClick applies one command under the every-click policy: the
// dial moves one click at a time, and every click that lands on 0
// increments the zero count. A distance of 0 moves nothing; a distance
// beyond Positions passes 0 once per revolution.
func (d *Dial) ApplyEveryClick(cmd RotationCommand) {
	current := d.position
	delta := cmd.Direction.Delta()
	for steps := cmd.Distance; steps != 0; steps-- {
		current = normalize(current + delta)
		if current == 0 {
			d.zeroCount++
		}
	}
	d.position = current
}

// Apply applies one command under the given policy.
func (d *Dial) Apply(cmd RotationCommand, p Policy) {
	switch p {
	case PolicyEndOfRotation:
		d.ApplyEndOfRotation(cmd)
	case PolicyEveryClick:
		d.ApplyEveryClick(cmd)
	default:
		panic(fmt.Sprintf("dial: invalid policy %d", int(p)))
	}
}

// ApplyAll applies a command sequence in strict order under the given
// policy. An empty sequence leaves the dial unchanged.
func (d *Dial) ApplyAll(cmds []RotationCommand, p Policy) {
	for _, cmd := range cmds {
		d.Apply(cmd, p)
	}
}

// Position returns the current arrow position, always in [0, Positions-1].
func (d *Dial) Position() int {
	return d.position
}

// ZeroCount returns the number of zero crossings counted so far. Read it
// once after all commands have been applied; the counter never decreases.
func (d *Dial) ZeroCount() uint64 {
	return d.zeroCount
}
