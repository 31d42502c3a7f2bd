// Package handlers routes decoded protocol messages to the room layer
// and translates failures back into typed error messages.
package handlers

import (
	"errors"
	"log"

	"github.com/palemoky/bezigue/internal/apperrors"
	"github.com/palemoky/bezigue/internal/game/room"
	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
	"github.com/palemoky/bezigue/internal/storage"
	"github.com/palemoky/bezigue/internal/types"
)

// Handler dispatches messages by type.
type Handler struct {
	server        types.ServerInterface
	rooms         *room.RoomManager
	leaderboard   *storage.LeaderboardManager
	defaultTarget int
}

// NewHandler creates the dispatcher.
func NewHandler(s types.ServerInterface, rooms *room.RoomManager, lb *storage.LeaderboardManager, defaultTarget int) *Handler {
	return &Handler{
		server:        s,
		rooms:         rooms,
		leaderboard:   lb,
		defaultTarget: defaultTarget,
	}
}

// Handle routes one message.
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	defer codec.PutMessage(msg)

	switch msg.Type {
	case protocol.MsgPing:
		h.handlePing(client, msg)

	case protocol.MsgCreateRoom:
		h.handleCreateRoom(client)
	case protocol.MsgJoinRoom:
		h.handleJoinRoom(client, msg)
	case protocol.MsgLeaveRoom:
		h.handleLeaveRoom(client)
	case protocol.MsgSetTarget:
		h.handleSetTarget(client, msg)
	case protocol.MsgReady:
		h.handleReady(client, true)
	case protocol.MsgCancelReady:
		h.handleReady(client, false)

	case protocol.MsgPlayCard:
		h.handlePlayCard(client, msg)
	case protocol.MsgDeclareMeld:
		h.handleDeclareMeld(client, msg)
	case protocol.MsgDrawCard:
		h.handleDrawCard(client)
	case protocol.MsgExchangeTrump:
		h.handleExchangeTrump(client)
	case protocol.MsgGetState:
		h.handleGetState(client)

	case protocol.MsgGetStats:
		h.handleGetStats(client)
	case protocol.MsgGetLeaderboard:
		h.handleGetLeaderboard(client, msg)
	case protocol.MsgGetOnlineCount:
		h.handleGetOnlineCount(client)

	default:
		log.Printf("unknown message type %q from %s (%s)", msg.Type, client.GetName(), client.GetID())
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// sendError maps an error onto the wire, keeping typed codes intact.
func (h *Handler) sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(codec.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}

// clientRoom resolves the client's room or reports the failure.
func (h *Handler) clientRoom(client types.ClientInterface) *room.Room {
	code := client.GetRoom()
	if code == "" {
		h.sendError(client, apperrors.ErrNotInRoom)
		return nil
	}
	r := h.rooms.GetRoom(code)
	if r == nil {
		h.sendError(client, apperrors.ErrRoomNotFound)
		return nil
	}
	return r
}
