// Package session ties the input controller, the pending message lifecycle, the
// transcript builder and the request encoder together for one user's chat view.
package session

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/floegence/chatoracle/internal/chatinput"
	"github.com/floegence/chatoracle/internal/debuglog"
	"github.com/floegence/chatoracle/internal/inference"
	"github.com/floegence/chatoracle/internal/ledger"
	"github.com/floegence/chatoracle/internal/transcript"
)

type Options struct {
	Log   *slog.Logger
	Debug *debuglog.Logger
	Now   func() time.Time
}

// Submission is what a send produced: the new pending message and the request
// payload to put in the transaction's calldata.
type Submission struct {
	Pending transcript.PendingMessage
	Payload string
}

type Session struct {
	log   *slog.Logger
	debug *debuglog.Logger
	now   func() time.Time
	input *chatinput.Controller

	mu                sync.Mutex
	conversation      []transcript.ConversationItem
	pending           *transcript.PendingMessage
	messageTxHashes   transcript.TxHashMap
	responseTxHashes  transcript.TxHashMap
	promptToMessageID transcript.PromptToMessageIDMap
	onSubmit          func(Submission)
}

func New(opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		log:               log,
		debug:             opts.Debug,
		now:               now,
		messageTxHashes:   transcript.TxHashMap{},
		responseTxHashes:  transcript.TxHashMap{},
		promptToMessageID: transcript.PromptToMessageIDMap{},
	}
	s.input = &chatinput.Controller{OnSend: s.send}
	return s
}

// Input is the controller the UI feeds keystrokes and clicks into.
func (s *Session) Input() *chatinput.Controller { return s.input }

// OnSubmit registers fn to receive every submission triggered through Input.
func (s *Session) OnSubmit(fn func(Submission)) {
	s.mu.Lock()
	s.onSubmit = fn
	s.mu.Unlock()
}

func (s *Session) send() {
	content := strings.TrimSpace(s.input.Value())
	if content == "" {
		return
	}
	sub := s.Submit(content)

	s.mu.Lock()
	fn := s.onSubmit
	s.mu.Unlock()

	s.input.SetValue("")
	s.input.SetPending(true)
	if fn != nil {
		fn(sub)
	}
}

// Submit makes content the pending message and encodes its request, replaying the
// confirmed transcript as history.
func (s *Session) Submit(content string) Submission {
	history := s.confirmedTranscript()
	payload := inference.BuildRequestBody(content, inference.Options{History: history})

	p := transcript.PendingMessage{
		ID:      s.now().UnixMilli(),
		Content: content,
		Status:  transcript.StatusPending,
	}
	s.mu.Lock()
	s.pending = &p
	s.mu.Unlock()

	s.debugLog("Sending message", map[string]any{"content": content, "historyLength": len(history), "payloadBytes": (len(payload) - 2) / 2})
	s.log.Debug("message submitted", "pending_id", p.ID, "history", len(history))
	return Submission{Pending: p, Payload: payload}
}

// MarkSent records the transaction that carries the pending message.
func (s *Session) MarkSent(txHash ledger.TxHash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return
	}
	s.pending.TxHash = txHash
	s.pending.Status = transcript.StatusConfirming
}

// MarkFailed flags the pending message as failed and re-enables input.
func (s *Session) MarkFailed() {
	s.mu.Lock()
	if s.pending != nil {
		s.pending.Status = transcript.StatusFailed
	}
	s.mu.Unlock()
	s.input.SetPending(false)
	s.debugLog("Message failed")
}

// Sync replaces the chain-read conversation and the lookup tables. The pending
// message is dropped once its text shows up as a confirmed prompt.
func (s *Session) Sync(conversation []transcript.ConversationItem, messageTxHashes, responseTxHashes transcript.TxHashMap, promptToMessageID transcript.PromptToMessageIDMap) {
	s.mu.Lock()
	s.conversation = append([]transcript.ConversationItem(nil), conversation...)
	if messageTxHashes != nil {
		s.messageTxHashes = messageTxHashes
	}
	if responseTxHashes != nil {
		s.responseTxHashes = responseTxHashes
	}
	if promptToMessageID != nil {
		s.promptToMessageID = promptToMessageID
	}
	confirmed := false
	if s.pending != nil {
		for _, c := range s.conversation {
			if c.Prompt == s.pending.Content {
				confirmed = true
				break
			}
		}
		if confirmed {
			s.pending = nil
		}
	}
	s.mu.Unlock()

	if confirmed {
		s.input.SetPending(false)
		s.debugLog("Pending message confirmed")
	}
}

// Pending returns a copy of the in-flight message, if any.
func (s *Session) Pending() (transcript.PendingMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return transcript.PendingMessage{}, false
	}
	return *s.pending, true
}

// Transcript is the render-ready list including the pending message.
func (s *Session) Transcript() []transcript.Message {
	s.mu.Lock()
	conv := s.conversation
	var pending *transcript.PendingMessage
	if s.pending != nil {
		p := *s.pending
		pending = &p
	}
	mtx, rtx, ids := s.messageTxHashes, s.responseTxHashes, s.promptToMessageID
	s.mu.Unlock()

	return transcript.BuildFromConversation(conv, pending, mtx, rtx, ids, s.debugFunc())
}

func (s *Session) confirmedTranscript() []transcript.Message {
	s.mu.Lock()
	conv := s.conversation
	mtx, rtx, ids := s.messageTxHashes, s.responseTxHashes, s.promptToMessageID
	s.mu.Unlock()
	return transcript.BuildFromConversation(conv, nil, mtx, rtx, ids, nil)
}

func (s *Session) debugFunc() transcript.DebugFunc {
	if s.debug == nil {
		return nil
	}
	return s.debug.Log
}

func (s *Session) debugLog(label string, args ...any) {
	if s.debug != nil {
		s.debug.Log(label, args...)
	}
}
