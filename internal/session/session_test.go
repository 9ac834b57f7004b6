package session

import (
	"strings"
	"testing"
	"time"

	"github.com/floegence/chatoracle/internal/debuglog"
	"github.com/floegence/chatoracle/internal/inference"
	"github.com/floegence/chatoracle/internal/transcript"
)

func fixedNow() time.Time { return time.UnixMilli(1_700_000_000_000) }

func TestSession_sendCreatesPendingAndPayload(t *testing.T) {
	s := New(Options{Now: fixedNow})
	s.Sync([]transcript.ConversationItem{{Prompt: "What is 2+2?", Response: "4"}}, nil, nil, nil)

	var got []Submission
	s.OnSubmit(func(sub Submission) { got = append(got, sub) })

	in := s.Input()
	in.SetValue("  What is 3+3?  ")
	if !in.HandleKey("Enter") {
		t.Fatalf("Enter did not send")
	}
	if len(got) != 1 {
		t.Fatalf("submissions=%d, want 1", len(got))
	}
	if in.Value() != "" || !in.Disabled() {
		t.Fatalf("input not reset: value=%q disabled=%v", in.Value(), in.Disabled())
	}

	sub := got[0]
	if sub.Pending.ID != fixedNow().UnixMilli() || sub.Pending.Content != "What is 3+3?" || sub.Pending.Status != transcript.StatusPending {
		t.Fatalf("pending=%+v", sub.Pending)
	}
	body, err := inference.DecodeRequestBody(sub.Payload)
	if err != nil {
		t.Fatalf("DecodeRequestBody: %v", err)
	}
	if len(body.Messages) != 4 || body.Messages[3].Content != "What is 3+3?" {
		t.Fatalf("messages=%+v", body.Messages)
	}

	// A second Enter while pending is ignored.
	in.SetValue("again")
	if in.HandleKey("Enter") || len(got) != 1 {
		t.Fatalf("send while pending was accepted")
	}

	lines := s.Transcript()
	if len(lines) != 3 || lines[2].Status != transcript.StatusPending {
		t.Fatalf("transcript=%+v", lines)
	}
}

func TestSession_emptyInputDoesNotSubmit(t *testing.T) {
	s := New(Options{})
	called := false
	s.OnSubmit(func(Submission) { called = true })
	s.Input().SetValue("   ")
	s.Input().Click()
	if called {
		t.Fatalf("blank input submitted")
	}
	if _, ok := s.Pending(); ok {
		t.Fatalf("blank input created a pending message")
	}
}

func TestSession_lifecycleToConfirmed(t *testing.T) {
	dbg := debuglog.New(debuglog.Options{MaxLogs: 50})
	defer dbg.Close()

	s := New(Options{Debug: dbg, Now: fixedNow})
	s.Input().SetValue("hello")
	s.Input().Click()

	s.MarkSent("0xfeed")
	p, ok := s.Pending()
	if !ok || p.Status != transcript.StatusConfirming || p.TxHash != "0xfeed" {
		t.Fatalf("pending=%+v ok=%v", p, ok)
	}

	s.Sync(
		[]transcript.ConversationItem{{Prompt: "hello", Response: "hi"}},
		transcript.TxHashMap{"5": "0xfeed"},
		transcript.TxHashMap{"5": "0xbeef"},
		transcript.PromptToMessageIDMap{"hello": "5"},
	)
	if _, ok := s.Pending(); ok {
		t.Fatalf("pending should be cleared once confirmed")
	}
	if s.Input().Disabled() {
		t.Fatalf("input should be re-enabled")
	}

	lines := s.Transcript()
	if len(lines) != 2 || lines[0].TxHash != "0xfeed" || lines[1].TxHash != "0xbeef" {
		t.Fatalf("transcript=%+v", lines)
	}

	joined := strings.Join(dbg.Logs(), "\n")
	for _, want := range []string{"Sending message", "Pending message confirmed", "Building messages"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("debug log missing %q:\n%s", want, joined)
		}
	}
}

func TestSession_markFailedReenablesInput(t *testing.T) {
	s := New(Options{})
	s.Input().SetValue("boom")
	s.Input().Click()
	s.MarkFailed()

	p, ok := s.Pending()
	if !ok || p.Status != transcript.StatusFailed {
		t.Fatalf("pending=%+v ok=%v", p, ok)
	}
	if s.Input().Disabled() {
		t.Fatalf("input still disabled after failure")
	}
}
