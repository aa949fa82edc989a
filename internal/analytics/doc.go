// Package analytics derives team performance figures from stored match
// results.
//
// The pure functions (WinRate, Tally) work on a slice of matches; Engine
// wraps them over anything that can list matches, normally a
// *store.Store.
package analytics
