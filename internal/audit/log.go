package audit

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Entry is one executed statement.
type Entry struct {
	Seq       int64  `json:"seq"`
	Statement string `json:"statement"`
}

// Log is the ordered statement history for one store session.
//
// Seq values come from a monotonic logical clock, so entries sort in
// execution order regardless of wall time.
//
// Thread-safety: Log is safe for concurrent use.
type Log struct {
	session string
	sink    Sink
	seq     atomic.Int64

	mu      sync.Mutex
	entries []Entry
}

// NewLog creates an empty log forwarding to sink. A nil sink discards.
// The session id is a UUIDv7 so sessions sort by creation time.
func NewLog(sink Sink) *Log {
	if sink == nil {
		sink = Discard
	}
	return &Log{
		session: uuid.Must(uuid.NewV7()).String(),
		sink:    sink,
	}
}

// Session returns the id identifying this log's session.
func (l *Log) Session() string {
	return l.session
}

// Record expands query with args, appends it and forwards it to the sink.
func (l *Log) Record(query string, args ...any) Entry {
	e := Entry{
		Seq:       l.seq.Add(1),
		Statement: Expand(query, args...),
	}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	l.sink.Log(e.Statement, SeverityQuery)
	return e
}

// Notify forwards a non-statement message to the sink without recording it.
func (l *Log) Notify(msg string, sev Severity) {
	l.sink.Log(msg, sev)
}

// Entries returns a copy of the history in execution order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Statements returns just the statement text of every entry.
func (l *Log) Statements() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Statement
	}
	return out
}

// Len returns the number of recorded statements.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
