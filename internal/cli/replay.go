package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/safedial/safedial/internal/engine"
	"github.com/safedial/safedial/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunToken string // optional - specific run only
}

// RunVerification holds the verification result for a single run.
type RunVerification struct {
	RunToken       string   `json:"run_token"`
	StoredDigest   string   `json:"stored_digest"`
	ComputedDigest string   `json:"computed_digest"`
	Match          bool     `json:"match"`
	Mismatches     []string `json:"mismatches,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs      []RunVerification `json:"runs"`
	TotalRuns int               `json:"total_runs"`
	AllMatch  bool              `json:"all_match"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-simulate stored runs and verify them",
		Long: `Re-simulate stored runs and verify the recorded rows.

Each run's stored command text is re-parsed and re-simulated through
the same code path the original run took, then every stored field and
the trace digest are compared against the fresh computation. The same
stored commands must always reproduce the same digest; a mismatch means
the rows were altered or the simulation changed.

Exit codes:
  0 - All runs verified
  1 - Verification mismatch detected
  2 - Command error (database not found, unknown run token)

Examples:
  safedial replay --db ./safedial.db
  safedial replay --db ./safedial.db --run 0198aa7e-52de-7c91-bc43-1f1888ae2c6e
  safedial replay --db ./safedial.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "verify a specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var tokens []string
	if opts.RunToken != "" {
		tokens = []string{opts.RunToken}
	} else {
		tokens, err = st.ListRunTokens(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list run tokens", err)
		}
	}

	if len(tokens) == 0 {
		if opts.Format == "json" {
			return outputReplayJSON(cmd, ReplayResult{
				Runs:      []RunVerification{},
				TotalRuns: 0,
				AllMatch:  true,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No runs found in database.")
		return nil
	}

	eng := engine.New(engine.WithStore(st))

	result := ReplayResult{
		Runs:      make([]RunVerification, 0, len(tokens)),
		TotalRuns: len(tokens),
		AllMatch:  true,
	}

	for _, token := range tokens {
		verification, err := eng.Verify(ctx, token)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to verify run %s", token), err)
		}

		result.Runs = append(result.Runs, RunVerification{
			RunToken:       verification.Token,
			StoredDigest:   verification.StoredDigest,
			ComputedDigest: verification.ComputedDigest,
			Match:          verification.Match,
			Mismatches:     verification.Mismatches,
		})
		if !verification.Match {
			result.AllMatch = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}

	return outputReplayText(cmd, result, opts.Verbose)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllMatch {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_VERIFY_FAILED",
			Message: "run verification failed",
		}
	}

	if err := outputJSON(cmd.OutOrStdout(), response); err != nil {
		return err
	}

	if !result.AllMatch {
		return NewExitError(ExitFailure, "run verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay Summary: %d run(s)\n", result.TotalRuns)
	fmt.Fprintln(w)

	for _, run := range result.Runs {
		status := "✓"
		if !run.Match {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Run: %s\n", status, run.RunToken)

		if verbose {
			fmt.Fprintf(w, "  Stored digest:   %s\n", run.StoredDigest)
			fmt.Fprintf(w, "  Computed digest: %s\n", run.ComputedDigest)
		}
		for _, mismatch := range run.Mismatches {
			fmt.Fprintf(w, "  %s\n", mismatch)
		}
	}
	fmt.Fprintln(w)

	if result.AllMatch {
		fmt.Fprintln(w, "✓ All runs verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Run verification failed")
	return NewExitError(ExitFailure, "run verification failed")
}
