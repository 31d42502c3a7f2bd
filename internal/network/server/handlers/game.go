package handlers

import (
	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
	"github.com/palemoky/bezigue/internal/types"
)

func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.clientRoom(client)
	if r == nil {
		return
	}

	if err := r.PlayCard(client, payload.Card, payload.Version); err != nil {
		h.sendError(client, err)
	}
}

func (h *Handler) handleDeclareMeld(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.DeclareMeldPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.clientRoom(client)
	if r == nil {
		return
	}

	if err := r.DeclareMeld(client, payload.Cards, payload.Version); err != nil {
		h.sendError(client, err)
	}
}

func (h *Handler) handleDrawCard(client types.ClientInterface) {
	r := h.clientRoom(client)
	if r == nil {
		return
	}

	if err := r.DrawCard(client); err != nil {
		h.sendError(client, err)
	}
}

func (h *Handler) handleExchangeTrump(client types.ClientInterface) {
	r := h.clientRoom(client)
	if r == nil {
		return
	}

	if err := r.ExchangeTrump(client); err != nil {
		h.sendError(client, err)
	}
}
