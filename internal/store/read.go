package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// GetRun retrieves a single run by token.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetRun(ctx context.Context, token string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, source, created_at, start_position, final_position,
		       rotations, clicks, end_of_rotation, every_click, digest
		FROM runs
		WHERE token = ?
	`, token)

	return scanRun(row)
}

// ListRuns returns runs matching the filter, newest first. Ties on
// created_at break on the token with binary collation, so listings are
// identical across processes.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query, params := buildListRunsQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	// Return empty slice instead of nil
	if runs == nil {
		runs = []Run{}
	}

	return runs, nil
}

// buildListRunsQuery assembles the filtered history query. Values are
// always parameterized, never interpolated, and every query carries the
// deterministic order key.
func buildListRunsQuery(filter RunFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT token, source, created_at, start_position, final_position,
		       rotations, clicks, end_of_rotation, every_click, digest
		FROM runs`)

	var conds []string
	var params []any
	if filter.Source != "" {
		conds = append(conds, "source = ?")
		params = append(params, filter.Source)
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "created_at >= ?")
		params = append(params, filter.Since.UTC().Format(timeLayout))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	sb.WriteString(" ORDER BY created_at DESC, token COLLATE BINARY ASC")

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		params = append(params, filter.Limit)
	}

	return sb.String(), params
}

// ListSteps returns the steps of a run ordered by sequence number.
//
// Returns an empty slice (not nil) for an unknown token; a run with no
// steps and a missing run look the same here, so callers that care use
// GetRun first.
func (s *Store) ListSteps(ctx context.Context, token string) ([]Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token, seq, command, from_position, to_position,
		       click_zero_hits, ends_at_zero
		FROM steps
		WHERE run_token = ?
		ORDER BY seq ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		var step Step
		if err := rows.Scan(
			&step.RunToken,
			&step.Seq,
			&step.Command,
			&step.FromPosition,
			&step.ToPosition,
			&step.ClickZeroHits,
			&step.EndsAtZero,
		); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}

	if steps == nil {
		steps = []Step{}
	}

	return steps, nil
}

// ListRunTokens returns every stored run token, oldest run first.
func (s *Store) ListRunTokens(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token
		FROM runs
		ORDER BY created_at ASC, token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query run tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan run token: %w", err)
		}
		tokens = append(tokens, token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run tokens: %w", err)
	}

	if tokens == nil {
		tokens = []string{}
	}

	return tokens, nil
}

// rowScanner lets scanRun work for both QueryRow and Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var created string
	if err := row.Scan(
		&run.Token,
		&run.Source,
		&created,
		&run.StartPosition,
		&run.FinalPosition,
		&run.Rotations,
		&run.Clicks,
		&run.EndOfRotation,
		&run.EveryClick,
		&run.Digest,
	); err != nil {
		// sql.ErrNoRows passes through for callers to detect
		return Run{}, err
	}

	createdAt, err := time.Parse(timeLayout, created)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	run.CreatedAt = createdAt

	return run, nil
}
