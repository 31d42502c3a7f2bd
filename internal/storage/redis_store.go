// Package storage persists room snapshots and player records in
// Redis. The engine itself never touches storage; rooms serialize
// their state here after each applied action.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/bezigue/internal/apperrors"
)

const (
	roomKeyPrefix    = "room:"
	sessionKeyPrefix = "session:"

	roomExpiration = 4 * time.Hour
)

// RoomData is the full synchronized state of a room, exactly what an
// adapter needs to rebuild the game: seats, zones as card codes,
// trump, phase, trick, scores and the declared-combination history.
type RoomData struct {
	Code        string       `json:"code"`
	Phase       string       `json:"phase"`
	Players     []PlayerData `json:"players"`
	TargetScore int          `json:"target_score"`
	WinnerUID   string       `json:"winner_uid,omitempty"`

	MeneIndex   int                          `json:"mene_index"`
	FirstPlayer string                       `json:"first_player"`
	TrumpCard   string                       `json:"trump_card"`
	TrumpTaken  bool                         `json:"trump_taken"`
	DrawPile    []string                     `json:"draw_pile"`
	Hands       map[string][]string          `json:"hands"`
	Melds       map[string][]string          `json:"melds"`
	History     map[string][]CombinationData `json:"history"`
	Scores      map[string]int               `json:"scores"`
	MeneScores  map[string]int               `json:"mene_scores"`
	TrickCards  []string                     `json:"trick_cards"`
	TrickUIDs   []string                     `json:"trick_uids"`
	DrawQueue   []string                     `json:"draw_queue"`
	CurrentTurn string                       `json:"current_turn"`
	CanMeld     string                       `json:"can_meld"`

	Version   uint64 `json:"version"`
	CreatedAt int64  `json:"created_at"`
}

// PlayerData is one seat.
type PlayerData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Seat  int    `json:"seat"`
	Ready bool   `json:"ready"`
}

// CombinationData is a scored combination, serialized.
type CombinationData struct {
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Points   int      `json:"points"`
	Cards    []string `json:"cards"`
}

// RedisStore wraps the Redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates the store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// --- Rooms ---

// SaveRoom writes a room snapshot unconditionally.
func (rs *RedisStore) SaveRoom(ctx context.Context, roomCode string, data *RoomData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal room data: %w", err)
	}

	key := roomKeyPrefix + roomCode
	return rs.client.Set(ctx, key, jsonData, roomExpiration).Err()
}

// SaveRoomCAS writes a snapshot only if it is newer than the stored
// one, using WATCH/MULTI. A concurrent writer or an older version
// yields ErrStaleState; the caller refetches and retries.
func (rs *RedisStore) SaveRoomCAS(ctx context.Context, roomCode string, data *RoomData) error {
	if data == nil {
		return nil
	}
	key := roomKeyPrefix + roomCode

	err := rs.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			var existing RoomData
			if uerr := json.Unmarshal(cur, &existing); uerr == nil && existing.Version >= data.Version {
				return apperrors.ErrStaleState
			}
		}

		jsonData, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal room data: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, jsonData, roomExpiration)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return apperrors.ErrStaleState
	}
	return err
}

// LoadRoom reads a room snapshot; nil means the room is unknown.
func (rs *RedisStore) LoadRoom(ctx context.Context, code string) (*RoomData, error) {
	key := roomKeyPrefix + code
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("unmarshal room data: %w", err)
	}

	return &roomData, nil
}

// DeleteRoom removes a room snapshot.
func (rs *RedisStore) DeleteRoom(ctx context.Context, code string) error {
	key := roomKeyPrefix + code
	return rs.client.Del(ctx, key).Err()
}

// GetAllRoomCodes lists the stored room codes.
func (rs *RedisStore) GetAllRoomCodes(ctx context.Context) ([]string, error) {
	keys, err := rs.client.Keys(ctx, roomKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(keys))
	for i, key := range keys {
		codes[i] = key[len(roomKeyPrefix):]
	}
	return codes, nil
}

// --- Sessions ---

// PlayerSessionData tracks which room a connection belongs to.
type PlayerSessionData struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	RoomCode   string `json:"room_code"`
	IsOnline   bool   `json:"is_online"`
}

// SaveSession stores a session hash.
func (rs *RedisStore) SaveSession(ctx context.Context, session *PlayerSessionData) error {
	data := map[string]any{
		"player_id":   session.PlayerID,
		"player_name": session.PlayerName,
		"room_code":   session.RoomCode,
		"is_online":   session.IsOnline,
	}

	key := sessionKeyPrefix + session.PlayerID
	return rs.client.HSet(ctx, key, data).Err()
}

// LoadSession reads a session hash; nil means no session.
func (rs *RedisStore) LoadSession(ctx context.Context, playerID string) (*PlayerSessionData, error) {
	key := sessionKeyPrefix + playerID
	data, err := rs.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &PlayerSessionData{
		PlayerID:   data["player_id"],
		PlayerName: data["player_name"],
		RoomCode:   data["room_code"],
		IsOnline:   data["is_online"] == "1",
	}, nil
}

// DeleteSession removes a session.
func (rs *RedisStore) DeleteSession(ctx context.Context, playerID string) error {
	key := sessionKeyPrefix + playerID
	return rs.client.Del(ctx, key).Err()
}
