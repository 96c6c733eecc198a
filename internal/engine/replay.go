package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safedial/safedial/internal/dial"
)

// Verification is the outcome of replaying a stored run.
//
// Verification is structural, not a special mode: the stored command
// text is re-parsed and re-simulated through the exact code path the
// original run took, then compared field by field. The same stored
// commands must always reproduce the same digest; a mismatch means
// either the stored rows were altered or the simulation semantics
// changed since the run was recorded.
type Verification struct {
	// Token is the verified run token.
	Token string

	// StoredDigest is the digest recorded when the run executed.
	StoredDigest string

	// ComputedDigest is the digest of the freshly replayed trace.
	ComputedDigest string

	// Match is true when the digests and every compared field agree.
	Match bool

	// Mismatches lists human-readable field differences, empty on match.
	Mismatches []string
}

// Verify replays the stored commands of a run and compares the result
// against the stored rows.
//
// Returns a RunError with ErrCodeNoStore if the engine has no store,
// and with ErrCodeRunNotFound if the token is unknown. A completed
// comparison never returns an error; mismatches are data, not failures.
func (e *Engine) Verify(ctx context.Context, token string) (*Verification, error) {
	if e.store == nil {
		return nil, &RunError{
			Code:    ErrCodeNoStore,
			Message: "verification requires a history store",
		}
	}

	rec, err := e.store.GetRun(ctx, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &RunError{
			Code:     ErrCodeRunNotFound,
			Message:  "no stored run with this token",
			RunToken: token,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("verify run %s: %w", token, err)
	}

	stored, err := e.store.ListSteps(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verify run %s: %w", token, err)
	}

	commands := make([]dial.RotationCommand, 0, len(stored))
	for _, step := range stored {
		cmd, err := dial.ParseRotationCommand(step.Command)
		if err != nil {
			return nil, fmt.Errorf("verify run %s: stored step %d: %w", token, step.Seq, err)
		}
		commands = append(commands, cmd)
	}

	trace := dial.Run(commands)
	digest, err := dial.TraceDigest(trace)
	if err != nil {
		return nil, fmt.Errorf("verify run %s: %w", token, err)
	}

	v := &Verification{
		Token:          token,
		StoredDigest:   rec.Digest,
		ComputedDigest: digest,
	}

	mismatch := func(field string, storedVal, computedVal any) {
		if storedVal != computedVal {
			v.Mismatches = append(v.Mismatches,
				fmt.Sprintf("%s: stored %v, computed %v", field, storedVal, computedVal))
		}
	}

	mismatch("digest", rec.Digest, digest)
	mismatch("start_position", rec.StartPosition, trace.Start)
	mismatch("final_position", rec.FinalPosition, trace.Final)
	mismatch("rotations", rec.Rotations, trace.Rotations)
	mismatch("clicks", rec.Clicks, trace.Clicks)
	mismatch("end_of_rotation", rec.EndOfRotation, int64(trace.EndOfRotation))
	mismatch("every_click", rec.EveryClick, int64(trace.EveryClick))

	// len(trace.Steps) == len(stored) because the trace was built from
	// the stored commands.
	for i, step := range trace.Steps {
		row := stored[i]
		mismatch(fmt.Sprintf("step %d seq", i+1), row.Seq, step.Seq)
		mismatch(fmt.Sprintf("step %d command", i+1), row.Command, step.Command.String())
		mismatch(fmt.Sprintf("step %d from", i+1), row.FromPosition, step.From)
		mismatch(fmt.Sprintf("step %d to", i+1), row.ToPosition, step.To)
		mismatch(fmt.Sprintf("step %d click_zero_hits", i+1), row.ClickZeroHits, int64(step.ClickZeroHits))
		mismatch(fmt.Sprintf("step %d ends_at_zero", i+1), row.EndsAtZero, step.EndsAtZero)
	}

	v.Match = len(v.Mismatches) == 0

	if v.Match {
		e.logger.Info("run verified",
			"run", token,
			"digest", digest,
		)
	} else {
		e.logger.Warn("run verification mismatch",
			"run", token,
			"stored_digest", rec.Digest,
			"computed_digest", digest,
			"mismatches", len(v.Mismatches),
		)
	}

	return v, nil
}
