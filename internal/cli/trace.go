package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/safedial/safedial/internal/dial"
	"github.com/safedial/safedial/internal/loader"
)

// StepRecord is the structured form of one rotation step.
type StepRecord struct {
	Seq           int64  `json:"seq"`
	Command       string `json:"command"`
	From          int    `json:"from"`
	To            int    `json:"to"`
	ClickZeroHits uint64 `json:"click_zero_hits"`
	EndsAtZero    bool   `json:"ends_at_zero"`
}

// TraceReport holds the complete trace output.
type TraceReport struct {
	Source        string       `json:"source"`
	StartPosition int          `json:"start_position"`
	FinalPosition int          `json:"final_position"`
	Rotations     int          `json:"rotations"`
	Clicks        int64        `json:"clicks"`
	EndOfRotation uint64       `json:"end_of_rotation"`
	EveryClick    uint64       `json:"every_click"`
	Steps         []StepRecord `json:"steps"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace [input-file]",
		Short: "Narrate a rotation command file step by step",
		Long: `Narrate the dial's walk through a rotation command file.

Prints one line per rotation in the puzzle's own phrasing, showing where
the dial ends up and how often it points at 0 along the way, followed by
the totals under both counting policies.

With no argument, traces the bundled puzzle input at assets/puzzle_input.

Examples:
  safedial trace
  safedial trace ./assets/puzzle_input
  safedial trace ./my_input --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := loader.DefaultInputPath()
			if len(args) == 1 {
				inputPath = args[0]
			}
			return runTrace(rootOpts, inputPath, cmd)
		},
	}

	return cmd
}

func runTrace(opts *RootOptions, inputPath string, cmd *cobra.Command) error {
	commands, err := loader.ReadCommands(inputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load commands", err)
	}
	if len(commands) == 0 {
		return NewExitError(ExitCommandError, "no commands to execute")
	}

	trace := dial.Run(commands)

	if opts.Format == "json" {
		return outputTraceJSON(cmd.OutOrStdout(), inputPath, trace)
	}

	outputTraceText(cmd.OutOrStdout(), trace)
	return nil
}

// outputTraceText renders the walk as narrative, one sentence per
// rotation.
func outputTraceText(w io.Writer, trace *dial.Trace) {
	fmt.Fprintf(w, "The dial starts by pointing at %d.\n", trace.Start)

	for _, step := range trace.Steps {
		fmt.Fprintln(w, narrateStep(step))
	}

	fmt.Fprintf(w, "The dial ends by pointing at %d.\n", trace.Final)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Zero count (end of rotation): %d\n", trace.EndOfRotation)
	fmt.Fprintf(w, "Zero count (every click): %d\n", trace.EveryClick)
}

// narrateStep phrases one rotation. Hits on 0 during the rotation are
// reported separately from a rotation that ends there, which the final
// position already shows.
func narrateStep(step dial.Step) string {
	during := step.ClickZeroHits
	if step.EndsAtZero {
		during--
	}

	sentence := fmt.Sprintf("The dial is rotated %s to point at %d", step.Command, step.To)
	if during > 0 {
		sentence += fmt.Sprintf("; during this rotation, it points at 0 %s", countPhrase(during))
	}
	return sentence + "."
}

// countPhrase renders a hit count the way the puzzle statement does.
func countPhrase(n uint64) string {
	switch n {
	case 1:
		return "once"
	case 2:
		return "twice"
	default:
		return fmt.Sprintf("%d times", n)
	}
}

func outputTraceJSON(w io.Writer, source string, trace *dial.Trace) error {
	steps := make([]StepRecord, len(trace.Steps))
	for i, step := range trace.Steps {
		steps[i] = StepRecord{
			Seq:           step.Seq,
			Command:       step.Command.String(),
			From:          step.From,
			To:            step.To,
			ClickZeroHits: step.ClickZeroHits,
			EndsAtZero:    step.EndsAtZero,
		}
	}

	report := TraceReport{
		Source:        source,
		StartPosition: trace.Start,
		FinalPosition: trace.Final,
		Rotations:     trace.Rotations,
		Clicks:        trace.Clicks,
		EndOfRotation: trace.EndOfRotation,
		EveryClick:    trace.EveryClick,
		Steps:         steps,
	}

	return outputJSON(w, CLIResponse{
		Status: "ok",
		Data:   report,
	})
}
