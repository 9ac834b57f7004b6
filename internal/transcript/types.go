package transcript

import (
	"math/big"

	"github.com/floegence/chatoracle/internal/ledger"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Status tracks a user message through submission and confirmation.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirming Status = "confirming"
	StatusConfirmed  Status = "confirmed"
	StatusFailed     Status = "failed"
)

// ConversationItem is one prompt/response pair as read from chain state.
// An empty Response means the prompt has not been answered yet.
type ConversationItem struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// PendingMessage is the single message the local user just submitted, before it
// shows up in the confirmed conversation.
type PendingMessage struct {
	ID      int64         `json:"id"`
	Content string        `json:"content"`
	TxHash  ledger.TxHash `json:"txHash,omitempty"`
	Status  Status        `json:"status"`
}

// TxHashMap maps a decimal message id to the transaction that carried it.
type TxHashMap map[string]ledger.TxHash

// PromptToMessageIDMap maps exact prompt text to the decimal global message id.
type PromptToMessageIDMap map[string]string

// Message is a render-ready transcript line.
//
// ID is a local ordering key, not the ledger message id. Empty TxHash and Status,
// and a nil MessageID, mean "unknown".
type Message struct {
	ID        int64         `json:"id"`
	Role      Role          `json:"role"`
	Content   string        `json:"content"`
	TxHash    ledger.TxHash `json:"txHash,omitempty"`
	Status    Status        `json:"status,omitempty"`
	MessageID *big.Int      `json:"messageId,omitempty"`
}

type MessageSentLog struct {
	MessageID *big.Int      `json:"messageId"`
	Prompt    string        `json:"prompt"`
	TxHash    ledger.TxHash `json:"txHash"`
}

type ResponseReceivedLog struct {
	MessageID *big.Int      `json:"messageId"`
	Response  string        `json:"response"`
	TxHash    ledger.TxHash `json:"txHash"`
}

// OnChainMessage is a transcript line rebuilt from event logs. Every value is
// confirmed, so TxHash is always set.
type OnChainMessage struct {
	MessageID *big.Int      `json:"messageId"`
	Role      Role          `json:"role"`
	Content   string        `json:"content"`
	TxHash    ledger.TxHash `json:"txHash"`
}

// DebugFunc receives diagnostic records while a transcript is built.
type DebugFunc func(label string, args ...any)
