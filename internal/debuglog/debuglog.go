// Package debuglog keeps a bounded, most-recent-first log of diagnostic lines for
// an in-app debug panel.
package debuglog

import (
	"log/slog"
	"sync"
	"time"
)

const defaultMaxLogs = 100

type Options struct {
	// MaxLogs bounds the buffer; <= 0 uses the default of 100.
	MaxLogs int
	// Sink mirrors every line at debug level. Optional.
	Sink *slog.Logger
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Logger is a ring buffer of formatted lines with an optional update callback.
//
// The callback never runs inside Log: each Log schedules it on the logger's
// notification queue, after the new line is visible through Logs.
type Logger struct {
	max  int
	sink *slog.Logger
	now  func() time.Time

	mu       sync.Mutex
	lines    []string
	onUpdate func()

	q *queue
}

func New(opts Options) *Logger {
	max := opts.MaxLogs
	if max <= 0 {
		max = defaultMaxLogs
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Logger{
		max:  max,
		sink: opts.Sink,
		now:  now,
		q:    newQueue(opts.Sink),
	}
}

// Log formats and prepends a line, evicting the oldest past capacity.
func (l *Logger) Log(label string, args ...any) {
	if l == nil {
		return
	}
	line := "[" + FormatTimestamp(l.now()) + "] " + FormatLogMessage(label, args)
	if l.sink != nil {
		l.sink.Debug("debug log", "label", label, "line", line)
	}

	l.mu.Lock()
	l.lines = append(l.lines, "")
	copy(l.lines[1:], l.lines)
	l.lines[0] = line
	if len(l.lines) > l.max {
		l.lines[len(l.lines)-1] = ""
		l.lines = l.lines[:l.max]
	}
	cb := l.onUpdate
	l.mu.Unlock()

	if cb != nil {
		l.q.schedule(cb)
	}
}

// Logs returns a copy of the buffer, most recent first.
func (l *Logger) Logs() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func (l *Logger) Clear() {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.lines = l.lines[:0]
	l.mu.Unlock()
}

// SetUpdateCallback registers fn to run after every Log. nil unregisters.
func (l *Logger) SetUpdateCallback(fn func()) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.onUpdate = fn
	l.mu.Unlock()
}

// Close stops the notification worker. Notifications not yet run are dropped.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.q.close()
}
