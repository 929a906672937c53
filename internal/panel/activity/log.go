package activity

import (
	"sync"
	"time"
)

// Severity classifies a log entry for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// maxEntries bounds the log; inserting past capacity evicts the oldest.
const maxEntries = 10

// timestampLayout is the wall-clock display format for entries.
const timestampLayout = "15:04:05"

// Entry is a single record of a user-facing event.
type Entry struct {
	Timestamp string
	Message   string
	Severity  Severity
}

// Log is a bounded, most-recent-first record of user-visible events.
// Purely additive except for capacity eviction; volatile, session-scoped.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

func NewLog() *Log {
	return &Log{now: time.Now}
}

// Record prepends a timestamped entry, dropping the oldest entry once
// the log exceeds capacity.
func (l *Log) Record(message string, severity Severity) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		Timestamp: l.now().Format(timestampLayout),
		Message:   message,
		Severity:  severity,
	}
	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[:maxEntries]
	}
}

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
