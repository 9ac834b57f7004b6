package inference

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/floegence/chatoracle/internal/transcript"
	"github.com/openai/openai-go"
)

// SystemPrompt is prepended to every request the oracle relays.
const SystemPrompt = "You are an on-chain AI living on the blockchain. Keep responses under 50 words. Be extremely brief. One short paragraph max. No lists, no URLs."

const (
	// MaxHistoryMessages bounds how many transcript lines are replayed as context.
	MaxHistoryMessages = 20

	Model = "gpt-4o-search-preview"

	// MaxTokens keeps responses short, which keeps the on-chain callback cheap.
	MaxTokens = 100
)

// ChatMessage is one entry of the request's message list.
type ChatMessage struct {
	Role    transcript.Role `json:"role"`
	Content string          `json:"content"`
}

// RequestBody is the JSON object submitted on-chain. Field order is the wire key order.
type RequestBody struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int64         `json:"max_tokens"`
}

type Options struct {
	// History is replayed as context; only the most recent MaxHistoryMessages are kept.
	History []transcript.Message
}

// NewRequestBody assembles the system entry, the history window and the prompt.
func NewRequestBody(prompt string, opts Options) RequestBody {
	recent := opts.History
	if len(recent) > MaxHistoryMessages {
		recent = recent[len(recent)-MaxHistoryMessages:]
	}

	msgs := make([]ChatMessage, 0, len(recent)+2)
	msgs = append(msgs, ChatMessage{Role: transcript.RoleSystem, Content: SystemPrompt})
	for _, m := range recent {
		msgs = append(msgs, ChatMessage{Role: m.Role, Content: m.Content})
	}
	msgs = append(msgs, ChatMessage{Role: transcript.RoleUser, Content: prompt})

	return RequestBody{
		Model:     Model,
		Messages:  msgs,
		MaxTokens: MaxTokens,
	}
}

// BuildRequestBody returns the 0x-prefixed lowercase hex of the UTF-8 JSON request.
// Identical inputs always produce identical output. The prompt is not validated.
func BuildRequestBody(prompt string, opts Options) string {
	b, err := NewRequestBody(prompt, opts).MarshalCompact()
	if err != nil {
		// Only strings and integers are encoded; this cannot fail.
		panic(fmt.Sprintf("inference: encode request body: %v", err))
	}
	return "0x" + hex.EncodeToString(b)
}

// MarshalCompact encodes the body as compact JSON without HTML escaping.
func (b RequestBody) MarshalCompact() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(b); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeRequestBody reverses BuildRequestBody.
func DecodeRequestBody(payload string) (RequestBody, error) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, "0x") && !strings.HasPrefix(payload, "0X") {
		return RequestBody{}, errors.New("missing 0x prefix")
	}
	raw, err := hex.DecodeString(payload[2:])
	if err != nil {
		return RequestBody{}, fmt.Errorf("decode hex: %w", err)
	}
	var body RequestBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return RequestBody{}, fmt.Errorf("decode json: %w", err)
	}
	return body, nil
}

// ChatCompletionParams maps the body onto the SDK request type so an off-chain relay
// can replay it unchanged.
func (b RequestBody) ChatCompletionParams() openai.ChatCompletionNewParams {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(b.Messages))
	for _, m := range b.Messages {
		switch m.Role {
		case transcript.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case transcript.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}
	return openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(b.Model),
		Messages:  msgs,
		MaxTokens: openai.Int(b.MaxTokens),
	}
}
