package handlers

import (
	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
	"github.com/palemoky/bezigue/internal/types"
)

func (h *Handler) handleCreateRoom(client types.ClientInterface) {
	if client.GetRoom() != "" {
		h.rooms.LeaveRoom(client)
	}

	r, err := h.rooms.CreateRoom(client, h.defaultTarget)
	if err != nil {
		h.sendError(client, err)
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode:    r.Code,
		TargetScore: r.Game.TargetScore,
	}))
}

func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if client.GetRoom() != "" {
		h.rooms.LeaveRoom(client)
	}

	r, err := h.rooms.JoinRoom(client, payload.RoomCode)
	if err != nil {
		h.sendError(client, err)
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode:    r.Code,
		TargetScore: r.Game.TargetScore,
		Players:     r.AllPlayersInfo(),
	}))
}

func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	h.rooms.LeaveRoom(client)
}

func (h *Handler) handleSetTarget(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.SetTargetPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if err := h.rooms.SetTargetScore(client, payload.TargetScore); err != nil {
		h.sendError(client, err)
	}
}

func (h *Handler) handleReady(client types.ClientInterface, ready bool) {
	if err := h.rooms.SetPlayerReady(client, ready); err != nil {
		h.sendError(client, err)
	}
}
