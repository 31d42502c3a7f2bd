package room

import (
	"context"
	"log"

	"github.com/palemoky/bezigue/internal/game/card"
	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
)

// The helpers in this file assume the caller holds r.mu.

func (r *Room) broadcast(msg *protocol.Message) {
	for _, player := range r.Players {
		if player.Client != nil {
			player.Client.SendMessage(msg)
		}
	}
}

func (r *Room) broadcastExcept(excludeID string, msg *protocol.Message) {
	for id, player := range r.Players {
		if id != excludeID && player.Client != nil {
			player.Client.SendMessage(msg)
		}
	}
}

func (r *Room) checkAllReady() bool {
	if len(r.Players) != maxPlayers {
		return false
	}
	for _, player := range r.Players {
		if !player.Ready {
			return false
		}
	}
	return true
}

func (r *Room) playerInfo(playerID string) protocol.PlayerInfo {
	player := r.Players[playerID]
	info := protocol.PlayerInfo{
		PlayerID: playerID,
		Seat:     player.Seat,
		Ready:    player.Ready,
		Score:    r.Game.Scores[playerID],
	}
	if player.Client != nil {
		info.PlayerName = player.Client.GetName()
	}
	return info
}

// AllPlayersInfo lists the seats in order.
func (r *Room) AllPlayersInfo() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.allPlayersInfo()
}

func (r *Room) allPlayersInfo() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.Players))
	for _, id := range r.PlayerOrder {
		infos = append(infos, r.playerInfo(id))
	}
	return infos
}

// startMene deals the next mène and tells each player their hand.
func (r *Room) startMene() error {
	if err := r.Game.StartMene(); err != nil {
		return err
	}

	g := r.Game
	for id, player := range r.Players {
		if player.Client == nil {
			continue
		}
		player.Client.SendMessage(codec.MustNewMessage(protocol.MsgMeneStarted, protocol.MeneStartedPayload{
			MeneIndex:   g.MeneIndex,
			FirstPlayer: g.FirstPlayer,
			TrumpCard:   g.TrumpCard.String(),
			TrumpSuit:   g.TrumpSuit.Letter(),
			Hand:        card.Strings(g.Hands[id]),
			Version:     g.Version,
		}))
	}

	log.Printf("room %s: mène %d dealt, %s leads, trump %s",
		r.Code, g.MeneIndex, g.FirstPlayer, g.TrumpCard.ShortCode())

	return nil
}

// persist snapshots the room to Redis asynchronously.
func (r *Room) persist() {
	if r.store == nil {
		return
	}
	data := r.toRoomData()
	go func() { _ = r.store.SaveRoomCAS(context.Background(), r.Code, data) }()
}
