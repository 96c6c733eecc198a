package store

import (
	"context"
	"fmt"
)

// SaveRun inserts a run and its steps in a single transaction.
//
// Idempotent on the run token: if a run with the same token already
// exists, nothing is written and no error is returned. Runs are
// content-addressed by their digest, so a duplicate save has nothing new
// to add. The transaction guarantees a run row is never visible without
// its steps.
func (s *Store) SaveRun(ctx context.Context, run Run, steps []Step) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(token, source, created_at, start_position, final_position, rotations, clicks, end_of_rotation, every_click, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		run.Token,
		run.Source,
		run.CreatedAt.UTC().Format(timeLayout),
		run.StartPosition,
		run.FinalPosition,
		run.Rotations,
		run.Clicks,
		run.EndOfRotation,
		run.EveryClick,
		run.Digest,
	)
	if err != nil {
		return fmt.Errorf("save run: insert run: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save run: rows affected: %w", err)
	}
	if inserted == 0 {
		// Run token already stored; the earlier transaction wrote the
		// steps too.
		return nil
	}

	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO steps
			(run_token, seq, command, from_position, to_position, click_zero_hits, ends_at_zero)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			run.Token,
			step.Seq,
			step.Command,
			step.FromPosition,
			step.ToPosition,
			step.ClickZeroHits,
			step.EndsAtZero,
		); err != nil {
			return fmt.Errorf("save run: insert step %d: %w", step.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit: %w", err)
	}

	return nil
}
