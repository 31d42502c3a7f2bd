package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
	"github.com/palemoky/bezigue/internal/testutil"
)

func TestHandleCreateRoom(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(c, codec.MustNewMessage(protocol.MsgCreateRoom, nil))

	created := c.MessagesOfType(protocol.MsgRoomCreated)
	require.Len(t, created, 1)

	payload, err := codec.ParsePayload[protocol.RoomCreatedPayload](created[0])
	require.NoError(t, err)
	assert.Len(t, payload.RoomCode, 6)
	assert.Equal(t, 2000, payload.TargetScore)
	assert.Equal(t, payload.RoomCode, c.RoomCode)
}

func TestHandleCreateRoom_LeavesCurrentRoom(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(c, codec.MustNewMessage(protocol.MsgCreateRoom, nil))
	first := c.RoomCode

	h.Handle(c, codec.MustNewMessage(protocol.MsgCreateRoom, nil))
	assert.NotEqual(t, first, c.RoomCode)
	assert.Nil(t, h.rooms.GetRoom(first), "the abandoned room dissolves")
}

func TestHandleJoinRoom(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestHandler(t)

	c1 := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(c1, codec.MustNewMessage(protocol.MsgCreateRoom, nil))

	c2 := &testutil.SimpleClient{ID: "p2", Name: "Bob"}
	h.Handle(c2, codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode: c1.RoomCode,
	}))

	joined := c2.MessagesOfType(protocol.MsgRoomJoined)
	require.Len(t, joined, 1)

	payload, err := codec.ParsePayload[protocol.RoomJoinedPayload](joined[0])
	require.NoError(t, err)
	assert.Equal(t, c1.RoomCode, payload.RoomCode)
	assert.Len(t, payload.Players, 2)
}

func TestHandleJoinRoom_Errors(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}

	h.Handle(c, codec.MustNewMessage(protocol.MsgJoinRoom, nil))
	require.Len(t, c.Messages, 1)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, c.Messages[0]))

	h.Handle(c, codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode: "999999",
	}))
	require.Len(t, c.Messages, 2)
	assert.Equal(t, protocol.ErrCodeRoomNotFound, errorCode(t, c.Messages[1]))
}

func TestHandleReady_NotInRoom(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(c, codec.MustNewMessage(protocol.MsgReady, nil))

	require.Len(t, c.Messages, 1)
	assert.Equal(t, protocol.ErrCodeNotInRoom, errorCode(t, c.Messages[0]))
}

func TestHandleSetTarget(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(c, codec.MustNewMessage(protocol.MsgCreateRoom, nil))
	h.Handle(c, codec.MustNewMessage(protocol.MsgSetTarget, protocol.SetTargetPayload{
		TargetScore: 1000,
	}))

	assert.Len(t, c.MessagesOfType(protocol.MsgTargetSet), 1)
	assert.Equal(t, 1000, h.rooms.GetRoom(c.RoomCode).Game.TargetScore)
}

func TestHandleUnknownType(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(c, codec.MustNewMessage("bogus", nil))

	require.Len(t, c.Messages, 1)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, c.Messages[0]))
}
