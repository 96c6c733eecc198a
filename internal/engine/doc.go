// Package engine orchestrates simulation runs.
//
// The engine ties the pure dial simulation to run identity and history:
// it assigns each execution a run token, stamps it with a wall-clock
// timestamp and a session-local ordinal, enforces the optional click
// budget, and persists the result when a store is attached.
//
// Execution itself is deterministic. The same command sequence always
// produces the same trace and the same digest, whatever token or
// timestamp a run happens to get; tokens and timestamps exist for
// correlation and history ordering, never for semantics.
//
// Verification replays the stored command text of a run through the
// same execution path and compares digests. There is no separate replay
// mode; see replay.go.
package engine
