package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/safedial/safedial/internal/engine"
	"github.com/safedial/safedial/internal/store"
	"github.com/safedial/safedial/internal/testutil"
)

// maxScenarioClicks caps runaway scenarios. Generous: the full puzzle
// input stays under a thousand clicks.
const maxScenarioClicks = 10_000_000

// Harness executes a single scenario against a fresh engine and store.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	clock  *testutil.DeterministicClock
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Deterministic helpers, a fixed run token and a pinned clock, make two
// executions of the same scenario byte-identical.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Resolve the rotation sequence (inline or input file)
// 3. Execute the run through the engine
// 4. Check every pinned expectation against the computed trace
// 5. Cross-check the persisted rows through the replay path
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	clock := testutil.NewDeterministicClock(time.Time{})
	tokens := testutil.NewFixedTokenGenerator(scenario.RunToken)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests

	eng := engine.New(
		engine.WithStore(st),
		engine.WithTokenGenerator(tokens),
		engine.WithNow(clock.Now),
		engine.WithLogger(logger),
		engine.WithMaxClicks(maxScenarioClicks),
	)

	h := &Harness{
		store:  st,
		engine: eng,
		clock:  clock,
		logger: logger,
	}

	return h.run(context.Background(), scenario)
}

// run resolves, executes, and checks one scenario.
func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	commands, err := scenario.Commands()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rotations: %w", err)
	}

	run, err := h.engine.Execute(ctx, "scenario:"+scenario.Name, commands)
	if err != nil {
		return nil, fmt.Errorf("failed to execute scenario: %w", err)
	}

	result := NewResult()
	result.Run = run

	checkExpectations(result, scenario.Expect, run.Trace)

	// The engine already persisted the run; replaying it through the
	// stored rows catches any divergence between trace and store.
	verification, err := h.engine.Verify(ctx, run.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to cross-check stored run: %w", err)
	}
	for _, mismatch := range verification.Mismatches {
		result.AddError("stored run diverges: " + mismatch)
	}

	h.logger.Info("scenario executed",
		"scenario", scenario.Name,
		"run", run.Token,
		"pass", result.Pass,
	)

	return result, nil
}
