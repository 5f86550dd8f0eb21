// Package ir defines the persisted record types of the evaluation log and
// their canonical JSON encoding.
//
// This package contains record definitions, canonical serialization and
// content hashing only. It imports nothing internal, so the store, engine
// and CLI can all depend on it without cycles.
//
// Key design constraints:
//   - No floats anywhere; numbers are int64 or canonical text
//   - All JSON tags use snake_case
//   - Ordering uses logical sequence numbers (seq), never wall-clock time
//   - Record IDs are SHA-256 digests of canonical JSON with a domain prefix
package ir
