package transcript

import (
	"math/big"
	"sort"
)

// BuildFromEvents rebuilds the transcript from MessageSent and ResponseReceived logs.
//
// Output is ordered by ascending message id, each prompt directly followed by its
// response when one exists. Every line carries the tx hash of the event it came from.
// The input slices are not modified.
func BuildFromEvents(messageLogs []MessageSentLog, responseLogs []ResponseReceivedLog) []OnChainMessage {
	responses := make(map[string]ResponseReceivedLog, len(responseLogs))
	for _, l := range responseLogs {
		responses[idKey(l.MessageID)] = l
	}

	sorted := append([]MessageSentLog(nil), messageLogs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareIDs(sorted[i].MessageID, sorted[j].MessageID) < 0
	})

	out := make([]OnChainMessage, 0, len(sorted)+len(responses))
	for _, m := range sorted {
		out = append(out, OnChainMessage{
			MessageID: m.MessageID,
			Role:      RoleUser,
			Content:   m.Prompt,
			TxHash:    m.TxHash,
		})
		if resp, ok := responses[idKey(m.MessageID)]; ok {
			out = append(out, OnChainMessage{
				MessageID: m.MessageID,
				Role:      RoleAssistant,
				Content:   resp.Response,
				TxHash:    resp.TxHash,
			})
		}
	}
	return out
}

// nil ids order and key as zero.
func compareIDs(a, b *big.Int) int {
	return orZero(a).Cmp(orZero(b))
}

func idKey(id *big.Int) string {
	return orZero(id).String()
}

var zero = new(big.Int)

func orZero(id *big.Int) *big.Int {
	if id == nil {
		return zero
	}
	return id
}
