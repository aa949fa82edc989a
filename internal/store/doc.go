// Package store provides SQLite-backed storage for scouting records.
//
// The store owns two tables:
//   - Teams: per-session team performance records, keyed by uid
//   - Matches: match results and six-slot rosters, keyed by matchNum
//
// # Consistency
//
// The schema declares no foreign keys. The store keeps rosters consistent
// by hand:
//   - A roster never holds more than six teams or the same team twice
//   - Slots fill red (0-2) before blue (3-5)
//   - Deleting a team clears its team number from every roster
//
// Each roster change is a fetch-modify-write cycle run inside a single
// transaction.
//
// # Diagnostics
//
// Every executed statement is recorded in an audit.Log. Statement failures
// are returned as errors and also reported to the log's sink. Failed
// preconditions (absent match, full roster, duplicate membership) are not
// errors: the operation reports false and sends a warning to the sink.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
