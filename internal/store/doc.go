// Package store provides SQLite-backed storage for run history.
//
// Two tables:
//   - runs: one row per executed simulation, keyed by run token
//   - steps: the per-rotation walk for each run
//
// Writes are transactional and idempotent: re-saving an existing run
// token is a no-op (ON CONFLICT DO NOTHING on the token key). Reads use
// deterministic ordering, created_at plus the token as a binary-collated
// tiebreaker, so history listings are stable across processes.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
