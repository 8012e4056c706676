package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Message represents a chat message.
//
// The raw JSON an incoming message was decoded from is retained and sent
// upstream unchanged, so fields beyond role and content survive the relay.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`

	raw json.RawMessage
}

// Conversation is an ordered list of messages, oldest first.
type Conversation []Message

func (m *Message) UnmarshalJSON(data []byte) error {
	m.raw = append(m.raw[:0], data...)
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return nil
	}
	var fields struct {
		Role    any `json:"role"`
		Content any `json:"content"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	m.Role, _ = fields.Role.(string)
	m.Content, _ = fields.Content.(string)
	return nil
}

func (m Message) MarshalJSON() ([]byte, error) {
	if len(m.raw) > 0 {
		return m.raw, nil
	}
	type plain Message
	return json.Marshal(plain(m))
}

// Provider turns a conversation into the assistant's reply text.
type Provider interface {
	Reply(ctx context.Context, messages Conversation) (string, error)
}

// APIError is the single failure kind returned by providers.
type APIError struct {
	// Provider is the name of the upstream that failed.
	Provider string

	// Message describes the failure.
	Message string

	// Code is the upstream status code, zero when none applies.
	Code int

	Cause error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
