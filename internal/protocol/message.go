package protocol

import "encoding/json"

// Message is the wire envelope.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType discriminates messages.
type MessageType string

// Client → server.
const (
	MsgPing MessageType = "ping"

	MsgCreateRoom  MessageType = "create_room"
	MsgJoinRoom    MessageType = "join_room"
	MsgLeaveRoom   MessageType = "leave_room"
	MsgSetTarget   MessageType = "set_target"
	MsgReady       MessageType = "ready"
	MsgCancelReady MessageType = "cancel_ready"

	MsgPlayCard      MessageType = "play_card"
	MsgDeclareMeld   MessageType = "declare_meld"
	MsgDrawCard      MessageType = "draw_card"
	MsgExchangeTrump MessageType = "exchange_trump"
	MsgGetState      MessageType = "get_state"

	MsgGetStats       MessageType = "get_stats"
	MsgGetLeaderboard MessageType = "get_leaderboard"
	MsgGetOnlineCount MessageType = "get_online_count"
)

// Server → client.
const (
	MsgConnected MessageType = "connected"
	MsgPong      MessageType = "pong"

	MsgRoomCreated  MessageType = "room_created"
	MsgRoomJoined   MessageType = "room_joined"
	MsgPlayerJoined MessageType = "player_joined"
	MsgPlayerLeft   MessageType = "player_left"
	MsgPlayerReady  MessageType = "player_ready"
	MsgTargetSet    MessageType = "target_set"

	MsgGameState      MessageType = "game_state"
	MsgMeneStarted    MessageType = "mene_started"
	MsgCardPlayed     MessageType = "card_played"
	MsgTrickResolved  MessageType = "trick_resolved"
	MsgMeldOptions    MessageType = "meld_options"
	MsgMeldDeclared   MessageType = "meld_declared"
	MsgCardDrawn      MessageType = "card_drawn"
	MsgTrumpExchanged MessageType = "trump_exchanged"
	MsgMeneEnded      MessageType = "mene_ended"
	MsgGameOver       MessageType = "game_over"

	MsgStatsResult       MessageType = "stats_result"
	MsgLeaderboardResult MessageType = "leaderboard_result"
	MsgOnlineCount       MessageType = "online_count"

	MsgError MessageType = "error"
)
