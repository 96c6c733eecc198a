package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/safedial/safedial/internal/dial"
	"github.com/safedial/safedial/internal/engine"
	"github.com/safedial/safedial/internal/loader"
	"github.com/safedial/safedial/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Policy   string
	Database string
}

// RunReport is the structured payload for a completed run.
type RunReport struct {
	Source        string `json:"source"`
	StartPosition int    `json:"start_position"`
	FinalPosition int    `json:"final_position"`
	Rotations     int    `json:"rotations"`
	Clicks        int64  `json:"clicks"`
	EndOfRotation uint64 `json:"end_of_rotation"`
	EveryClick    uint64 `json:"every_click"`
	Digest        string `json:"digest"`
	Recorded      bool   `json:"recorded"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [input-file]",
		Short: "Execute a rotation command file",
		Long: `Execute a rotation command file against a fresh dial.

Reads newline-separated rotation commands (L<distance> or R<distance>),
turns the dial one click at a time from position 50, and prints how many
clicks landed on 0 under the selected counting policy.

With no argument, runs the bundled puzzle input at assets/puzzle_input.

Examples:
  safedial run
  safedial run ./assets/puzzle_input --policy click
  safedial run ./my_input --db ./safedial.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := loader.DefaultInputPath()
			if len(args) == 1 {
				inputPath = args[0]
			}
			return runSimulation(opts, inputPath, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Policy, "policy", "both", "counting policy (end|click|both)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")

	return cmd
}

func runSimulation(opts *RunOptions, inputPath string, cmd *cobra.Command) error {
	if err := validatePolicy(opts.Policy); err != nil {
		return WrapExitError(ExitCommandError, "invalid --policy", err)
	}

	commands, err := loader.ReadCommands(inputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load commands", err)
	}
	if len(commands) == 0 {
		return NewExitError(ExitCommandError, "no commands to execute")
	}

	var engOpts []engine.Option
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
		engOpts = append(engOpts, engine.WithStore(st))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	eng := engine.New(engOpts...)
	run, err := eng.Execute(ctx, inputPath, commands)
	if err != nil {
		return WrapExitError(ExitFailure, "run failed", err)
	}

	if opts.Format == "json" {
		return outputRunJSON(cmd.OutOrStdout(), opts, run)
	}

	outputRunText(cmd.OutOrStdout(), opts, run)
	return nil
}

// validatePolicy accepts the run command's policy flag values: the two
// dial policies plus "both".
func validatePolicy(policy string) error {
	if policy == "both" {
		return nil
	}
	_, err := dial.ParsePolicy(policy)
	return err
}

func outputRunText(w io.Writer, opts *RunOptions, run *engine.Run) {
	trace := run.Trace

	if opts.Policy != "click" {
		fmt.Fprintf(w, "Zero count (end of rotation): %d\n", trace.EndOfRotation)
	}
	if opts.Policy != "end" {
		fmt.Fprintf(w, "Zero count (every click): %d\n", trace.EveryClick)
	}

	if opts.Verbose {
		fmt.Fprintf(w, "Final position: %d\n", trace.Final)
		fmt.Fprintf(w, "Rotations: %d (%d clicks)\n", trace.Rotations, trace.Clicks)
		fmt.Fprintf(w, "Digest: %s\n", run.Digest)
	}
	if opts.Database != "" {
		fmt.Fprintf(w, "Run recorded: %s\n", run.Token)
	}
}

func outputRunJSON(w io.Writer, opts *RunOptions, run *engine.Run) error {
	trace := run.Trace
	report := RunReport{
		Source:        run.Source,
		StartPosition: trace.Start,
		FinalPosition: trace.Final,
		Rotations:     trace.Rotations,
		Clicks:        trace.Clicks,
		EndOfRotation: trace.EndOfRotation,
		EveryClick:    trace.EveryClick,
		Digest:        run.Digest,
		Recorded:      opts.Database != "",
	}

	return outputJSON(w, CLIResponse{
		Status:   "ok",
		Data:     report,
		RunToken: run.Token,
	})
}
