package dial

// Step records the effect of one rotation command on the dial: where the
// arrow started, where it ended, how many individual clicks landed on 0,
// and whether the rotation finished on 0. One flat record powers the
// counts, the narrative rendering, persistence, and replay alike.
type Step struct {
	// Seq is the 1-based position of the command in the sequence.
	Seq int64
	// Command is the rotation that produced this step.
	Command RotationCommand
	// From and To are the arrow positions before and after the rotation.
	From int
	To   int
	// ClickZeroHits is the number of clicks during this rotation that
	// landed on 0, including a final click that ends there.
	ClickZeroHits uint64
	// EndsAtZero reports whether the rotation left the arrow at 0.
	EndsAtZero bool
}

// Trace is the full record of a command sequence applied from Start:
// per-command steps plus both policy totals.
type Trace struct {
	// Start and Final are the arrow positions before the first command
	// and after the last.
	Start int
	Final int
	// Rotations is the number of commands applied.
	Rotations int
	// Clicks is the total number of individual clicks simulated.
	Clicks int64
	// EndOfRotation and EveryClick are the zero counts under the two
	// policies. EndOfRotation never exceeds EveryClick.
	EndOfRotation uint64
	EveryClick    uint64
	// Steps holds one record per command, in sequence order. Never nil.
	Steps []Step
}

// Run applies the command sequence from Start under both counting
// policies and returns the combined trace. The policies run on two
// independently constructed dials so neither affects the other; their
// end positions agree after every command because a rotation's final
// position does not depend on how its clicks are counted.
func Run(commands []RotationCommand) *Trace {
	end := NewDial()
	click := NewDial()

	t := &Trace{
		Start:     end.Position(),
		Rotations: len(commands),
		Steps:     make([]Step, 0, len(commands)),
	}

	for i, cmd := range commands {
		from := end.Position()
		endBefore := end.ZeroCount()
		clickBefore := click.ZeroCount()

		end.ApplyEndOfRotation(cmd)
		click.ApplyEveryClick(cmd)

		t.Clicks += int64(cmd.Distance)
		t.Steps = append(t.Steps, Step{
			Seq:           int64(i) + 1,
			Command:       cmd,
			From:          from,
			To:            end.Position(),
			ClickZeroHits: click.ZeroCount() - clickBefore,
			EndsAtZero:    end.ZeroCount() > endBefore,
		})
	}

	t.Final = end.Position()
	t.EndOfRotation = end.ZeroCount()
	t.EveryClick = click.ZeroCount()
	return t
}
