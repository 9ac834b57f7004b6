package transcript

import (
	"math/big"
	"strings"

	"github.com/floegence/chatoracle/internal/ledger"
)

// Resolution is what is known about the ledger identity of one prompt.
type Resolution struct {
	MessageID      *big.Int
	MessageTxHash  ledger.TxHash
	ResponseTxHash ledger.TxHash
}

// Resolver links a conversation prompt to its global message id and transactions.
type Resolver interface {
	Resolve(prompt string) (Resolution, bool)
}

// MapResolver joins the prompt-to-id table with the two tx hash tables.
type MapResolver struct {
	PromptToMessageID PromptToMessageIDMap
	MessageTxHashes   TxHashMap
	ResponseTxHashes  TxHashMap
}

func (r MapResolver) Resolve(prompt string) (Resolution, bool) {
	raw := r.PromptToMessageID[prompt]
	if raw == "" {
		return Resolution{}, false
	}
	id, ok := parseMessageID(raw)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{
		MessageID:      id,
		MessageTxHash:  r.MessageTxHashes[raw],
		ResponseTxHash: r.ResponseTxHashes[raw],
	}, true
}

func parseMessageID(raw string) (*big.Int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	return new(big.Int).SetString(raw, 10)
}
