package debuglog

import (
	"errors"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 15, 10, 30, 45, 123_000_000, time.UTC), "10:30:45.123"},
		{time.Date(2024, 1, 1, 1, 2, 3, 4_000_000, time.UTC), "01:02:03.004"},
		{time.Date(2024, 1, 1, 3, 2, 3, 4_000_000, time.FixedZone("x", 2*3600)), "01:02:03.004"},
	}
	for _, c := range cases {
		if got := FormatTimestamp(c.in); got != c.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatLogMessage(t *testing.T) {
	cases := []struct {
		label string
		args  []any
		want  string
	}{
		{"Label", []any{"hello", "world"}, "Label: hello world"},
		{"Data", []any{map[string]string{"key": "value"}}, `Data: {"key":"value"}`},
		{"Mixed", []any{"text", 42, map[string]int{"a": 1}}, `Mixed: text 42 {"a":1}`},
		{"List", []any{[]int{1, 2}, true, 1.5}, "List: [1,2] true 1.5"},
		{"Misc", []any{nil, big.NewInt(7), errors.New("boom")}, "Misc: null 7 boom"},
		{"Empty", nil, "Empty: "},
	}
	for _, c := range cases {
		if got := FormatLogMessage(c.label, c.args); got != c.want {
			t.Fatalf("FormatLogMessage(%q) = %q, want %q", c.label, got, c.want)
		}
	}
}

func fixedClock() func() time.Time {
	ts := time.Date(2024, 1, 15, 10, 30, 45, 123_000_000, time.UTC)
	return func() time.Time { return ts }
}

func TestLogger_keepsMostRecentUpToMax(t *testing.T) {
	l := New(Options{MaxLogs: 3, Now: fixedClock()})
	defer l.Close()

	for _, label := range []string{"First", "Second", "Third", "Fourth"} {
		l.Log(label)
	}

	logs := l.Logs()
	if len(logs) != 3 {
		t.Fatalf("len=%d, want 3", len(logs))
	}
	if logs[0] != "[10:30:45.123] Fourth: " {
		t.Fatalf("logs[0]=%q", logs[0])
	}
	if !strings.Contains(logs[2], "Second") {
		t.Fatalf("logs[2]=%q, want Second", logs[2])
	}
}

func TestLogger_clear(t *testing.T) {
	l := New(Options{MaxLogs: 10})
	defer l.Close()

	l.Log("Test")
	if len(l.Logs()) != 1 {
		t.Fatalf("len=%d, want 1", len(l.Logs()))
	}
	l.Clear()
	if len(l.Logs()) != 0 {
		t.Fatalf("len=%d after Clear, want 0", len(l.Logs()))
	}
}

func TestLogger_defaultCapacity(t *testing.T) {
	l := New(Options{})
	defer l.Close()
	for i := 0; i < defaultMaxLogs+5; i++ {
		l.Log("x", i)
	}
	if got := len(l.Logs()); got != defaultMaxLogs {
		t.Fatalf("len=%d, want %d", got, defaultMaxLogs)
	}
}

func TestLogger_callbackRunsAfterLog(t *testing.T) {
	l := New(Options{MaxLogs: 10})
	defer l.Close()

	seen := make(chan int, 1)
	l.SetUpdateCallback(func() { seen <- len(l.Logs()) })
	l.Log("Test", "arg")

	select {
	case n := <-seen:
		if n != 1 {
			t.Fatalf("callback saw %d lines, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("callback not called")
	}
}

func TestLogger_eachLogSchedulesNotification(t *testing.T) {
	l := New(Options{MaxLogs: 2})
	defer l.Close()

	var calls atomic.Int32
	done := make(chan struct{})
	l.SetUpdateCallback(func() {
		if calls.Add(1) == 5 {
			close(done)
		}
	})
	for i := 0; i < 5; i++ {
		l.Log("burst", i)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("calls=%d, want 5", calls.Load())
	}
}

func TestLogger_noCallbackRegistered(t *testing.T) {
	l := New(Options{MaxLogs: 10})
	defer l.Close()

	l.Log("Test")
	l.SetUpdateCallback(func() { t.Errorf("unregistered callback should not run") })
	l.SetUpdateCallback(nil)
	l.Log("Again")

	if len(l.Logs()) != 2 {
		t.Fatalf("len=%d, want 2", len(l.Logs()))
	}
}

func TestLogger_panickingCallbackIsContained(t *testing.T) {
	l := New(Options{MaxLogs: 10, Sink: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))})
	defer l.Close()

	next := make(chan struct{})
	first := true
	l.SetUpdateCallback(func() {
		if first {
			first = false
			panic("boom")
		}
		close(next)
	})
	l.Log("one")
	l.Log("two")

	select {
	case <-next:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker stopped after callback panic")
	}
}

func TestLogger_logAfterCloseDoesNotNotify(t *testing.T) {
	l := New(Options{MaxLogs: 10})
	l.SetUpdateCallback(func() { t.Errorf("callback ran after Close") })
	l.Close()
	l.Log("late")
	l.Close()

	if len(l.Logs()) != 1 {
		t.Fatalf("len=%d, want 1", len(l.Logs()))
	}
}
