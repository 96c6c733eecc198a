package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safedial/safedial/internal/dial"
)

func int64p(v int64) *int64 { return &v }
func intp(v int) *int       { return &v }

// classicTrace runs the worked example and returns its trace.
func classicTrace(t *testing.T) *dial.Trace {
	t.Helper()
	lines := []string{"L68", "L30", "R48", "L5", "R60", "L55", "L1", "L99", "R14", "L82"}
	commands := make([]dial.RotationCommand, 0, len(lines))
	for _, line := range lines {
		cmd, err := dial.ParseRotationCommand(line)
		require.NoError(t, err)
		commands = append(commands, cmd)
	}
	return dial.Run(commands)
}

func TestCheckExpectations_AllMatch(t *testing.T) {
	result := NewResult()
	expect := Expect{
		EndOfRotation: int64p(3),
		EveryClick:    int64p(6),
		FinalPosition: intp(32),
	}

	checkExpectations(result, expect, classicTrace(t))

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
}

func TestCheckExpectations_NothingPinnedAlwaysPasses(t *testing.T) {
	result := NewResult()

	checkExpectations(result, Expect{}, classicTrace(t))

	assert.True(t, result.Pass)
}

func TestCheckExpectations_EachFieldChecked(t *testing.T) {
	tests := []struct {
		name   string
		expect Expect
		field  string
	}{
		{"end_of_rotation", Expect{EndOfRotation: int64p(4)}, "end_of_rotation"},
		{"every_click", Expect{EveryClick: int64p(5)}, "every_click"},
		{"final_position", Expect{FinalPosition: intp(31)}, "final_position"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := NewResult()
			checkExpectations(result, tc.expect, classicTrace(t))

			assert.False(t, result.Pass)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], "Assertion failed: "+tc.field)
		})
	}
}

func TestCheckExpectations_MultipleFailuresAllReported(t *testing.T) {
	result := NewResult()
	expect := Expect{
		EndOfRotation: int64p(4),
		EveryClick:    int64p(5),
		FinalPosition: intp(31),
	}

	checkExpectations(result, expect, classicTrace(t))

	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 3)
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Field:    "final_position",
		Expected: "33",
		Actual:   "82",
		Steps: []dial.Step{
			{Seq: 1, Command: dial.RotationCommand{Direction: dial.Left, Distance: 68}, From: 50, To: 82, ClickZeroHits: 1},
		},
	}

	want := "Assertion failed: final_position\n" +
		"  Expected: 33\n" +
		"  Actual: 82\n" +
		"\nRotation path:\n" +
		"  [1] L68 50 -> 82 (zero hits 1)\n"
	assert.Equal(t, want, err.Error())
}

func TestAssertionError_FormatWithoutSteps(t *testing.T) {
	err := &AssertionError{
		Field:    "every_click",
		Expected: "5",
		Actual:   "6",
	}

	want := "Assertion failed: every_click\n" +
		"  Expected: 5\n" +
		"  Actual: 6\n"
	assert.Equal(t, want, err.Error())
}
