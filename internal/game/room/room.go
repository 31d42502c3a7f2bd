// Package room manages game rooms: seating, readiness, the bridge
// between connected clients and the rule engine, and persistence of
// room snapshots.
package room

import (
	"sync"
	"time"

	"github.com/palemoky/bezigue/internal/game/engine"
	"github.com/palemoky/bezigue/internal/storage"
	"github.com/palemoky/bezigue/internal/types"
)

const (
	roomCodeLength = 6
	roomCodeChars  = "0123456789"

	maxPlayers = 2
)

// RoomPlayer is one seat in a room.
type RoomPlayer struct {
	Client types.ClientInterface
	Seat   int
	Ready  bool
}

// Room is a game room. The engine state lives in Game; the room adds
// the connection-facing concerns around it.
type Room struct {
	Code        string
	Players     map[string]*RoomPlayer
	PlayerOrder []string
	Game        *engine.Game
	CreatedAt   time.Time

	store       *storage.RedisStore
	leaderboard *storage.LeaderboardManager

	mu sync.RWMutex
}

// RoomManager tracks the live rooms.
type RoomManager struct {
	redisStore  *storage.RedisStore
	leaderboard *storage.LeaderboardManager
	roomTimeout time.Duration
	rooms       map[string]*Room
	mu          sync.RWMutex
}

// NewRoomManager creates the manager and starts the cleanup loop.
func NewRoomManager(rs *storage.RedisStore, lb *storage.LeaderboardManager, roomTimeout time.Duration) *RoomManager {
	rm := &RoomManager{
		redisStore:  rs,
		leaderboard: lb,
		roomTimeout: roomTimeout,
		rooms:       make(map[string]*Room),
	}

	go rm.cleanupLoop()

	return rm
}
