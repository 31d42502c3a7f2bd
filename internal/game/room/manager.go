package room

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/palemoky/bezigue/internal/apperrors"
	"github.com/palemoky/bezigue/internal/game/engine"
	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
	"github.com/palemoky/bezigue/internal/types"
)

// CreateRoom creates a room with the client in the first seat.
func (rm *RoomManager) CreateRoom(client types.ClientInterface, targetScore int) (*Room, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	code := rm.generateRoomCode()

	room := &Room{
		Code:        code,
		Players:     make(map[string]*RoomPlayer),
		PlayerOrder: make([]string, 0, maxPlayers),
		Game:        engine.NewGame(targetScore),
		CreatedAt:   time.Now(),
		store:       rm.redisStore,
		leaderboard: rm.leaderboard,
	}

	if err := room.Game.AddPlayer(client.GetID()); err != nil {
		return nil, err
	}
	room.Players[client.GetID()] = &RoomPlayer{Client: client, Seat: 0}
	room.PlayerOrder = append(room.PlayerOrder, client.GetID())
	client.SetRoom(code)

	rm.rooms[code] = room

	room.persist()

	log.Printf("room %s created by %s", code, client.GetName())

	return room, nil
}

// JoinRoom seats the client in an existing room.
func (rm *RoomManager) JoinRoom(client types.ClientInterface, code string) (*Room, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, exists := rm.rooms[code]
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if len(room.Players) >= maxPlayers {
		return nil, apperrors.ErrRoomFull
	}

	if err := room.Game.AddPlayer(client.GetID()); err != nil {
		return nil, err
	}

	seat := len(room.Players)
	room.Players[client.GetID()] = &RoomPlayer{Client: client, Seat: seat}
	room.PlayerOrder = append(room.PlayerOrder, client.GetID())
	client.SetRoom(code)

	log.Printf("player %s joined room %s", client.GetName(), code)

	room.broadcastExcept(client.GetID(), codec.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: room.playerInfo(client.GetID()),
	}))

	room.persist()

	return room, nil
}

// LeaveRoom removes the client from their room, dissolving the room
// when it empties.
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return
	}

	rm.mu.Lock()
	room, exists := rm.rooms[roomCode]
	rm.mu.Unlock()
	if !exists {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	player, exists := room.Players[client.GetID()]
	if !exists {
		return
	}

	room.broadcastExcept(client.GetID(), codec.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
	}))

	delete(room.Players, client.GetID())
	for i, id := range room.PlayerOrder {
		if id == client.GetID() {
			room.PlayerOrder = append(room.PlayerOrder[:i], room.PlayerOrder[i+1:]...)
			break
		}
	}
	client.SetRoom("")

	log.Printf("player %s left room %s (seat %d)", client.GetName(), roomCode, player.Seat)

	if len(room.Players) == 0 {
		rm.mu.Lock()
		delete(rm.rooms, roomCode)
		rm.mu.Unlock()
		go func() { _ = rm.redisStore.DeleteRoom(context.Background(), roomCode) }()
		log.Printf("room %s dissolved", roomCode)
	} else {
		room.persist()
	}
}

// SetPlayerReady toggles readiness; the first mène is dealt when both
// seats are taken and ready.
func (rm *RoomManager) SetPlayerReady(client types.ClientInterface, ready bool) error {
	room, err := rm.roomOf(client)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	player, exists := room.Players[client.GetID()]
	if !exists {
		return apperrors.ErrNotInRoom
	}

	player.Ready = ready

	room.broadcast(codec.MustNewMessage(protocol.MsgPlayerReady, protocol.PlayerReadyPayload{
		PlayerID: client.GetID(),
		Ready:    ready,
	}))

	if room.checkAllReady() && room.Game.Phase == engine.PhaseWaiting {
		if err := room.startMene(); err != nil {
			return err
		}
		room.persist()
	}

	return nil
}

// SetTargetScore configures the winning threshold before the deal.
func (rm *RoomManager) SetTargetScore(client types.ClientInterface, score int) error {
	room, err := rm.roomOf(client)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if _, exists := room.Players[client.GetID()]; !exists {
		return apperrors.ErrNotInRoom
	}

	if err := room.Game.SetTargetScore(score); err != nil {
		return err
	}

	room.broadcast(codec.MustNewMessage(protocol.MsgTargetSet, protocol.TargetSetPayload{
		TargetScore: score,
	}))

	room.persist()
	return nil
}

// GetRoom returns a live room by code.
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// GetRoomByPlayerID finds the room holding a player.
func (rm *RoomManager) GetRoomByPlayerID(playerID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	for _, room := range rm.rooms {
		room.mu.RLock()
		_, exists := room.Players[playerID]
		room.mu.RUnlock()
		if exists {
			return room
		}
	}
	return nil
}

// GetActiveGamesCount counts rooms with a mène in progress.
func (rm *RoomManager) GetActiveGamesCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	count := 0
	for _, room := range rm.rooms {
		room.mu.RLock()
		switch room.Game.Phase {
		case engine.PhaseDealing, engine.PhasePlaying, engine.PhaseBattle:
			count++
		}
		room.mu.RUnlock()
	}
	return count
}

// roomOf resolves the client's current room.
func (rm *RoomManager) roomOf(client types.ClientInterface) (*Room, error) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return nil, apperrors.ErrNotInRoom
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	rm.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

// generateRoomCode draws an unused numeric code.
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// cleanupLoop periodically removes stale waiting rooms.
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rm.cleanup()
	}
}

func (rm *RoomManager) cleanup() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	now := time.Now()

	for code, room := range rm.rooms {
		room.mu.RLock()
		expired := room.Game.Phase == engine.PhaseWaiting && now.Sub(room.CreatedAt) > rm.roomTimeout
		room.mu.RUnlock()
		if !expired {
			continue
		}

		room.mu.Lock()
		room.broadcast(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "room timed out"))
		for _, p := range room.Players {
			if p.Client != nil {
				p.Client.SetRoom("")
			}
		}
		room.mu.Unlock()

		delete(rm.rooms, code)
		go func(c string) { _ = rm.redisStore.DeleteRoom(context.Background(), c) }(code)
		log.Printf("room %s timed out, cleaned up", code)
	}
}
