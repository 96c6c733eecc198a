package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/safedial/safedial/internal/dial"
)

// TraceSnapshot captures the complete run outcome for a scenario
// execution. All fields use canonical JSON serialization for
// deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string
	RunToken     string
	Digest       string
	Trace        *dial.Trace
}

// NewTraceSnapshot builds the snapshot for an executed scenario result.
func NewTraceSnapshot(scenarioName string, result *Result) TraceSnapshot {
	return TraceSnapshot{
		ScenarioName: scenarioName,
		RunToken:     result.Run.Token,
		Digest:       result.Run.Digest,
		Trace:        result.Run.Trace,
	}
}

// MarshalCanonical renders the snapshot as canonical JSON. The nested
// trace object is the exact structure the run digest hashes, so a golden
// file doubles as an audit record: hashing its trace object reproduces
// the digest field.
func (s *TraceSnapshot) MarshalCanonical() ([]byte, error) {
	return dial.MarshalCanonical(map[string]any{
		"scenario_name": s.ScenarioName,
		"run_token":     s.RunToken,
		"digest":        s.Digest,
		"trace":         s.Trace.CanonicalMap(),
	})
}

// RunWithGolden executes a scenario and compares the trace snapshot
// against a golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for expected run output;
// a diff means the simulation or the canonical form changed.
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result's snapshot against a golden
// file. This is useful when you've already run a scenario and want to
// compare the result without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := NewTraceSnapshot(scenarioName, result)
	snapshotJSON, err := snapshot.MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, snapshotJSON)

	return nil
}
