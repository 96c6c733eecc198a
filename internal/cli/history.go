package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/safedial/safedial/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Source   string
	Since    string
	Limit    int
}

// RunRecord is the structured form of one stored run.
type RunRecord struct {
	RunToken      string    `json:"run_token"`
	CreatedAt     time.Time `json:"created_at"`
	Source        string    `json:"source"`
	StartPosition int       `json:"start_position"`
	FinalPosition int       `json:"final_position"`
	Rotations     int       `json:"rotations"`
	Clicks        int64     `json:"clicks"`
	EndOfRotation int64     `json:"end_of_rotation"`
	EveryClick    int64     `json:"every_click"`
	Digest        string    `json:"digest"`
}

// HistoryResult holds the overall history output.
type HistoryResult struct {
	Runs      []RunRecord `json:"runs"`
	TotalRuns int         `json:"total_runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List the runs recorded in a history database, newest first.

Each entry shows the run token, when and from which input it was
recorded, both zero counts, and the trace digest.

Examples:
  safedial history --db ./safedial.db
  safedial history --db ./safedial.db --source assets/puzzle_input
  safedial history --db ./safedial.db --since 2026-01-01 --limit 10`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Source, "source", "", "only runs recorded from this source")
	cmd.Flags().StringVar(&opts.Since, "since", "", "only runs created at or after this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of runs to list (0 = unlimited)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	since, err := parseSince(opts.Since)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --since", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runs, err := st.ListRuns(ctx, store.RunFilter{
		Source: opts.Source,
		Since:  since,
		Limit:  opts.Limit,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	result := HistoryResult{
		Runs:      make([]RunRecord, 0, len(runs)),
		TotalRuns: len(runs),
	}
	for _, run := range runs {
		result.Runs = append(result.Runs, RunRecord{
			RunToken:      run.Token,
			CreatedAt:     run.CreatedAt,
			Source:        run.Source,
			StartPosition: run.StartPosition,
			FinalPosition: run.FinalPosition,
			Rotations:     run.Rotations,
			Clicks:        run.Clicks,
			EndOfRotation: run.EndOfRotation,
			EveryClick:    run.EveryClick,
			Digest:        run.Digest,
		})
	}

	if opts.Format == "json" {
		return outputJSON(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data:   result,
		})
	}

	outputHistoryText(cmd.OutOrStdout(), result, opts.Verbose)
	return nil
}

// parseSince accepts an RFC3339 timestamp or a bare date.
func parseSince(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither RFC3339 nor YYYY-MM-DD", s)
	}
	return t, nil
}

// outputHistoryText renders the run listing as text.
func outputHistoryText(w io.Writer, result HistoryResult, verbose bool) {
	if result.TotalRuns == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "Run History: %d run(s)\n", result.TotalRuns)
	fmt.Fprintln(w)

	for _, run := range result.Runs {
		fmt.Fprintf(w, "%s\n", run.RunToken)
		fmt.Fprintf(w, "  Created:   %s\n", run.CreatedAt.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "  Source:    %s\n", run.Source)
		fmt.Fprintf(w, "  Rotations: %d (%d clicks)\n", run.Rotations, run.Clicks)
		fmt.Fprintf(w, "  Position:  %d -> %d\n", run.StartPosition, run.FinalPosition)
		fmt.Fprintf(w, "  Zeros:     %d end-of-rotation, %d every-click\n", run.EndOfRotation, run.EveryClick)
		if verbose {
			fmt.Fprintf(w, "  Digest:    %s\n", run.Digest)
		} else {
			fmt.Fprintf(w, "  Digest:    %s\n", truncateDigest(run.Digest))
		}
		fmt.Fprintln(w)
	}
}

// truncateDigest shortens a hex digest for display.
func truncateDigest(digest string) string {
	if len(digest) <= 16 {
		return digest
	}
	return digest[:8] + "..." + digest[len(digest)-8:]
}
