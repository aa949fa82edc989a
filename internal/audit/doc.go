// Package audit records every statement the store executes.
//
// Each statement is expanded with its bound parameters, stamped with a
// logical sequence number and appended to an in-memory Log, which forwards
// it to a Sink for display. The same Sink carries the store's diagnostic
// and error messages, each tagged with a Severity.
//
// Nothing in this package participates in any correctness invariant: a
// store with a discarded or empty log behaves identically.
package audit
