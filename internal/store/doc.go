// Package store provides SQLite-backed durable storage for peano
// evaluation logs.
//
// The store is an append-only log with two tables:
//   - runs: one row per session, CLI invocation or scenario
//   - evaluations: one row per evaluated expression, keyed by its
//     content-addressed ID
//
// # Ordering
//
// All ordering uses the logical seq column, never timestamps. Every query
// that returns evaluations ends with ORDER BY seq ASC, id ASC COLLATE BINARY
// so that replays see identical results.
//
// # Idempotency
//
// Writes use ON CONFLICT DO NOTHING. Writing the same evaluation twice is a
// no-op, which makes a replayed run safe to record again.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
//
// Evaluation IDs and value digests are computed in internal/ir.
package store
