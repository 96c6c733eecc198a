// Package harness provides conformance testing for the dial simulation.
//
// The harness loads scenario files, executes them through the engine,
// and checks pinned expectations as executable contract tests.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: classic-sample
//	description: "Worked example from the puzzle statement"
//	rotations: [L68, L30, R48, L5, R60, L55, L1, L99, R14, L82]
//	expect:
//	  end_of_rotation: 3
//	  every_click: 6
//	  final_position: 32
//	run_token: classic-sample-0001
//
// Instead of inline rotations, a scenario may reference a command file:
//
//	input_file: relative/path/to/input
//
// The path resolves against the base path given at load time, usually
// the scenario file's own directory.
//
// # Expectations
//
// The expect clause pins any subset of:
//
//   - end_of_rotation: zeros counted under the end-of-rotation policy
//   - every_click: zeros counted under the every-click policy
//   - final_position: where the dial points after the last rotation
//
// At least one must be pinned. Unpinned values are not checked.
//
// # Deterministic Testing
//
// All scenarios execute with a fixed run token and a pinned clock so
// results reproduce byte for byte across runs.
//
// The harness uses:
//   - Fixed run tokens (from scenario.run_token, or testutil.DefaultRunToken)
//   - Deterministic timestamps (testutil.DeterministicClock)
//   - In-memory SQLite database (isolated per scenario)
//
// After execution the persisted rows are replayed and compared against
// the computed trace, so a scenario also exercises the store round trip.
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/classic-sample.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
//
// Golden snapshots of the canonical trace live in testdata/golden;
// regenerate them with:
//
//	go test ./internal/harness -update
package harness
