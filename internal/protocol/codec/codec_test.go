package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/bezigue/internal/protocol"
)

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(protocol.MsgPlayCard, protocol.PlayCardPayload{
		Card:    "AS_1",
		Version: 7,
	})

	data, err := Encode(msg)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	defer PutMessage(decoded)

	assert.Equal(t, protocol.MsgPlayCard, decoded.Type)

	payload, err := ParsePayload[protocol.PlayCardPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "AS_1", payload.Card)
	assert.Equal(t, uint64(7), payload.Version)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("not json"))
	assert.Error(t, err)

	// Valid JSON without a type is still rejected.
	_, err = Decode([]byte(`{"payload":{}}`))
	assert.Error(t, err)
}

func TestParsePayload_Empty(t *testing.T) {
	t.Parallel()

	msg := &protocol.Message{Type: protocol.MsgPlayCard}
	_, err := ParsePayload[protocol.PlayCardPayload](msg)
	assert.Error(t, err)
}

func TestNewMessage_NilPayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(protocol.MsgPing, nil)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPing, msg.Type)
	assert.Nil(t, msg.Payload)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(protocol.ErrCodeRoomNotFound)
	assert.Equal(t, protocol.MsgError, msg.Type)

	payload, err := ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeRoomNotFound, payload.Code)
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeRoomNotFound], payload.Message)
}

func TestMessagePool_GetPut(t *testing.T) {
	t.Parallel()

	msg := GetMessage()
	assert.NotNil(t, msg)

	msg.Type = "test"
	msg.Payload = []byte("data")
	PutMessage(msg)

	msg2 := GetMessage()
	assert.NotNil(t, msg2)
	assert.Empty(t, msg2.Type)
	assert.Nil(t, msg2.Payload)
}

func TestMessagePool_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutMessage(nil)
	})
}

func TestMessagePool_Concurrency(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			msg := GetMessage()
			msg.Type = "concurrent"
			msg.Payload = []byte("test")
			PutMessage(msg)
		})
	}
	wg.Wait()
}
