// Package codec encodes and decodes protocol messages as JSON.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/palemoky/bezigue/internal/protocol"
)

// Encode serializes a message for the wire.
func Encode(msg *protocol.Message) ([]byte, error) {
	return json.Marshal(msg)
}

// Decode parses a wire message.
func Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, fmt.Errorf("decode message: %w", err)
	}
	if msg.Type == "" {
		PutMessage(msg)
		return nil, fmt.Errorf("decode message: missing type")
	}
	return msg, nil
}

// NewMessage builds a message with a JSON payload.
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := &protocol.Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage is NewMessage for payloads that cannot fail to
// marshal (our own structs).
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// ParsePayload decodes a message payload into a typed struct.
func ParsePayload[T any](msg *protocol.Message) (T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return payload, fmt.Errorf("decode payload: empty")
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}

// NewErrorMessage builds an error message from a code.
func NewErrorMessage(code int) *protocol.Message {
	return NewErrorMessageWithText(code, protocol.ErrorMessages[code])
}

// NewErrorMessageWithText builds an error message with explicit text.
func NewErrorMessageWithText(code int, text string) *protocol.Message {
	return MustNewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: text,
	})
}
