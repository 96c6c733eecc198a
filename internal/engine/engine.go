package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/safedial/safedial/internal/dial"
	"github.com/safedial/safedial/internal/store"
)

// Run is one executed simulation together with its identity.
type Run struct {
	// Token uniquely identifies this run.
	Token string

	// Seq is the session-local run ordinal from the engine clock.
	// Not part of the digest and not persisted.
	Seq int64

	// Source records where the commands came from (an input path or a
	// scenario name).
	Source string

	// CreatedAt is the wall-clock stamp used for history ordering.
	CreatedAt time.Time

	// Trace is the full deterministic walk across both counting policies.
	Trace *dial.Trace

	// Digest is the content-addressed trace digest.
	Digest string
}

// Engine executes command sequences and records runs.
//
// A zero-option engine simulates in memory only: UUIDv7 tokens,
// wall-clock timestamps, no store, no click budget. Options attach the
// pieces a deployment or test needs.
type Engine struct {
	store     *store.Store
	clock     *Clock
	tokens    TokenGenerator
	logger    *slog.Logger
	now       func() time.Time
	maxClicks int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore attaches a history store. Every executed run is persisted
// transactionally before Execute returns.
func WithStore(s *store.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithTokenGenerator replaces the run token source.
// Tests use FixedGenerator for deterministic tokens.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Engine) {
		e.tokens = g
	}
}

// WithLogger replaces the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithNow replaces the wall-clock source.
// Tests pin timestamps for reproducible history rows.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithClock replaces the run ordinal clock.
// Use NewClockAt to resume numbering from a known position.
func WithClock(clock *Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithMaxClicks sets the click budget per run.
//
// Default: 0 (unlimited), preserving exact simulation semantics for
// arbitrarily large distances. Use a positive cap when executing
// untrusted inputs.
func WithMaxClicks(maxClicks int64) Option {
	return func(e *Engine) {
		e.maxClicks = maxClicks
	}
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:  NewClock(),
		tokens: UUIDv7Generator{},
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute runs the command sequence under both counting policies and
// returns the recorded run.
//
// The run token is assigned before anything else, so even a budget
// rejection names the run it rejected. With a store attached, the run
// and its steps are persisted before Execute returns; persistence
// failure fails the call.
func (e *Engine) Execute(ctx context.Context, source string, commands []dial.RotationCommand) (*Run, error) {
	token := e.tokens.Generate()

	if err := e.checkBudget(token, commands); err != nil {
		e.logger.Error("run rejected",
			"run", token,
			"source", source,
			"error", err,
		)
		return nil, err
	}

	trace := dial.Run(commands)
	digest, err := dial.TraceDigest(trace)
	if err != nil {
		return nil, fmt.Errorf("execute run %s: %w", token, err)
	}

	run := &Run{
		Token:     token,
		Seq:       e.clock.Next(),
		Source:    source,
		CreatedAt: e.now(),
		Trace:     trace,
		Digest:    digest,
	}

	if e.store != nil {
		if err := e.persist(ctx, run); err != nil {
			return nil, fmt.Errorf("execute run %s: %w", token, err)
		}
	}

	e.logger.Info("run executed",
		"run", run.Token,
		"source", run.Source,
		"rotations", trace.Rotations,
		"clicks", trace.Clicks,
		"final", trace.Final,
		"end_of_rotation", trace.EndOfRotation,
		"every_click", trace.EveryClick,
	)

	return run, nil
}

// checkBudget rejects command sequences whose total click count exceeds
// the configured cap, before any simulation happens.
func (e *Engine) checkBudget(token string, commands []dial.RotationCommand) error {
	if e.maxClicks <= 0 {
		return nil
	}

	var total int64
	for _, cmd := range commands {
		total += int64(cmd.Distance)
		if total > e.maxClicks {
			return NewBudgetError(token, total, e.maxClicks)
		}
	}
	return nil
}

// persist converts the run to its storage rows and saves them.
func (e *Engine) persist(ctx context.Context, run *Run) error {
	rec := store.Run{
		Token:         run.Token,
		Source:        run.Source,
		CreatedAt:     run.CreatedAt,
		StartPosition: run.Trace.Start,
		FinalPosition: run.Trace.Final,
		Rotations:     run.Trace.Rotations,
		Clicks:        run.Trace.Clicks,
		EndOfRotation: int64(run.Trace.EndOfRotation),
		EveryClick:    int64(run.Trace.EveryClick),
		Digest:        run.Digest,
	}

	steps := make([]store.Step, len(run.Trace.Steps))
	for i, s := range run.Trace.Steps {
		steps[i] = store.Step{
			RunToken:      run.Token,
			Seq:           s.Seq,
			Command:       s.Command.String(),
			FromPosition:  s.From,
			ToPosition:    s.To,
			ClickZeroHits: int64(s.ClickZeroHits),
			EndsAtZero:    s.EndsAtZero,
		}
	}

	return e.store.SaveRun(ctx, rec, steps)
}
