package handlers

import (
	"time"

	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
	"github.com/palemoky/bezigue/internal/types"
)

func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleGetState resynchronizes a client from the authoritative state.
func (h *Handler) handleGetState(client types.ClientInterface) {
	r := h.clientRoom(client)
	if r == nil {
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgGameState, r.StateFor(client)))
}
