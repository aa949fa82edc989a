package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Severity classifies a message sent to a Sink.
type Severity int

const (
	// SeverityQuery marks an executed statement.
	SeverityQuery Severity = iota
	// SeverityInfo marks a backend status message.
	SeverityInfo
	// SeverityWarning marks a precondition that turned an operation into a no-op.
	SeverityWarning
	// SeverityError marks a failed statement or file operation.
	SeverityError
)

// String returns the prefix used in history output.
func (s Severity) String() string {
	switch s {
	case SeverityQuery:
		return "SQL"
	case SeverityInfo:
		return "MSG"
	case SeverityWarning:
		return "WARN"
	case SeverityError:
		return "ERROR"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Sink receives (message, severity) pairs from the store.
// Implementations must not call back into the store.
type Sink interface {
	Log(msg string, sev Severity)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(msg string, sev Severity)

// Log calls f(msg, sev).
func (f SinkFunc) Log(msg string, sev Severity) { f(msg, sev) }

// Discard drops every message.
var Discard Sink = SinkFunc(func(string, Severity) {})

// SlogSink forwards messages to a structured logger.
// Statements go out at Debug so they only show with verbose logging.
type SlogSink struct {
	Logger  *slog.Logger
	Session string
}

// NewSlogSink creates a sink writing to logger, or slog.Default() if nil.
func NewSlogSink(logger *slog.Logger, session string) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{Logger: logger, Session: session}
}

// Log implements Sink.
func (s *SlogSink) Log(msg string, sev Severity) {
	level := slog.LevelInfo
	switch sev {
	case SeverityQuery:
		level = slog.LevelDebug
	case SeverityWarning:
		level = slog.LevelWarn
	case SeverityError:
		level = slog.LevelError
	}

	attrs := []any{"kind", sev.String()}
	if s.Session != "" {
		attrs = append(attrs, "session", s.Session)
	}
	s.Logger.Log(context.Background(), level, msg, attrs...)
}

// WriterSink renders messages as a prefixed history, one block per message:
//
//	SQL> SELECT ...
//	MSG> Found 3 Teams
//	ERROR> update team: ...
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing history lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Log implements Sink.
func (s *WriterSink) Log(msg string, sev Severity) {
	if msg == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s> %s\n", sev, msg)
}

// Multi fans each message out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	return SinkFunc(func(msg string, sev Severity) {
		for _, s := range live {
			s.Log(msg, sev)
		}
	})
}

// Message is one captured Sink call.
type Message struct {
	Text     string
	Severity Severity
}

// Recorder keeps every message it receives. Used in tests and by callers
// that want to inspect diagnostics after an operation.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Log implements Sink.
func (r *Recorder) Log(msg string, sev Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Text: msg, Severity: sev})
}

// Messages returns a copy of every recorded message.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Filter returns the recorded messages with the given severity.
func (r *Recorder) Filter(sev Severity) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, m := range r.messages {
		if m.Severity == sev {
			out = append(out, m.Text)
		}
	}
	return out
}

// Reset drops every recorded message.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
