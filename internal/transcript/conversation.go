package transcript

import (
	"sort"
)

const debugPromptPreviewRunes = 30

// BuildFromConversation merges the chain-read conversation, the pending message and
// the tx hash lookups into one transcript. debug may be nil.
func BuildFromConversation(
	conversation []ConversationItem,
	pending *PendingMessage,
	messageTxHashes TxHashMap,
	responseTxHashes TxHashMap,
	promptToMessageID PromptToMessageIDMap,
	debug DebugFunc,
) []Message {
	if debug != nil {
		debug("Building messages", map[string]any{
			"conversationLength": len(conversation),
			"promptToMessageId":  sortedEntries(promptToMessageID),
			"messageTxHashes":    sortedEntries(messageTxHashes),
			"responseTxHashes":   sortedEntries(responseTxHashes),
		})
	}
	r := MapResolver{
		PromptToMessageID: promptToMessageID,
		MessageTxHashes:   messageTxHashes,
		ResponseTxHashes:  responseTxHashes,
	}
	return BuildWithResolver(conversation, pending, r, debug)
}

// BuildWithResolver is BuildFromConversation over an arbitrary identifier source.
//
// The user line of item i gets ID 2i and the assistant line 2i+1. The pending
// message is appended last unless a user line already has the same content.
func BuildWithResolver(conversation []ConversationItem, pending *PendingMessage, r Resolver, debug DebugFunc) []Message {
	out := make([]Message, 0, 2*len(conversation)+1)

	for i, item := range conversation {
		var res Resolution
		ok := false
		if r != nil {
			res, ok = r.Resolve(item.Prompt)
		}
		if !ok && debug != nil {
			debug("Missing messageId for prompt", map[string]any{
				"index":  i,
				"prompt": previewRunes(item.Prompt, debugPromptPreviewRunes),
			})
		}

		out = append(out, Message{
			ID:        int64(i) * 2,
			Role:      RoleUser,
			Content:   item.Prompt,
			Status:    StatusConfirmed,
			MessageID: res.MessageID,
			TxHash:    res.MessageTxHash,
		})

		if item.Response != "" {
			out = append(out, Message{
				ID:        int64(i)*2 + 1,
				Role:      RoleAssistant,
				Content:   item.Response,
				Status:    StatusConfirmed,
				MessageID: res.MessageID,
				TxHash:    res.ResponseTxHash,
			})
		}
	}

	if pending != nil && !containsUserContent(out, pending.Content) {
		out = append(out, Message{
			ID:      pending.ID,
			Role:    RoleUser,
			Content: pending.Content,
			TxHash:  pending.TxHash,
			Status:  pending.Status,
		})
	}
	return out
}

// containsUserContent matches by text only, so two distinct messages with identical
// text are indistinguishable here.
func containsUserContent(msgs []Message, content string) bool {
	for _, m := range msgs {
		if m.Role == RoleUser && m.Content == content {
			return true
		}
	}
	return false
}

func previewRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func sortedEntries[V ~string](m map[string]V) [][2]string {
	out := make([][2]string, 0, len(m))
	for k, v := range m {
		out = append(out, [2]string{k, string(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
