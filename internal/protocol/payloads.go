package protocol

// Cards travel as canonical codes like "10D_2"; the codec package in
// internal/game/card owns the format.

// --- Client request payloads ---

// PingPayload carries the client timestamp in milliseconds.
type PingPayload struct {
	Timestamp int64 `json:"timestamp"`
}

// JoinRoomPayload joins an existing room by code.
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

// SetTargetPayload configures the winning score before the first deal.
type SetTargetPayload struct {
	TargetScore int `json:"target_score"`
}

// PlayCardPayload plays one card into the trick.
type PlayCardPayload struct {
	Card string `json:"card"`
	// Version optionally pins the snapshot the client acted on; a
	// mismatch is rejected as stale instead of being applied blindly.
	Version uint64 `json:"version,omitempty"`
}

// DeclareMeldPayload declares the combination formed by these cards.
type DeclareMeldPayload struct {
	Cards   []string `json:"cards"`
	Version uint64   `json:"version,omitempty"`
}

// GetLeaderboardPayload requests the top players.
type GetLeaderboardPayload struct {
	Limit int `json:"limit"`
}

// --- Server response payloads ---

// ConnectedPayload confirms the connection and assigned identity.
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload answers a ping.
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// PlayerInfo describes a seated player.
type PlayerInfo struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Seat       int    `json:"seat"`
	Score      int    `json:"score"`
	Ready      bool   `json:"ready"`
}

// RoomCreatedPayload confirms room creation.
type RoomCreatedPayload struct {
	RoomCode    string `json:"room_code"`
	TargetScore int    `json:"target_score"`
}

// RoomJoinedPayload confirms joining and lists the seats.
type RoomJoinedPayload struct {
	RoomCode    string       `json:"room_code"`
	TargetScore int          `json:"target_score"`
	Players     []PlayerInfo `json:"players"`
}

// PlayerJoinedPayload announces another player's arrival.
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload announces a departure.
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerReadyPayload announces a ready toggle.
type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
}

// TargetSetPayload announces the configured target score.
type TargetSetPayload struct {
	TargetScore int `json:"target_score"`
}

// CombinationDTO is a scored combination on the wire.
type CombinationDTO struct {
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Points   int      `json:"points"`
	Cards    []string `json:"cards"`
}

// TrickDTO is the in-progress trick.
type TrickDTO struct {
	Cards   []string `json:"cards"`
	Players []string `json:"players"`
}

// GameStateDTO is the per-player view of the game: the opponent's
// hand is reduced to a count, everything else is public.
type GameStateDTO struct {
	Phase         string                      `json:"phase"`
	Players       []PlayerInfo                `json:"players"`
	TargetScore   int                         `json:"target_score"`
	MeneIndex     int                         `json:"mene_index"`
	FirstPlayer   string                      `json:"first_player"`
	TrumpCard     string                      `json:"trump_card"`
	TrumpSuit     string                      `json:"trump_suit"`
	TrumpTaken    bool                        `json:"trump_taken"`
	DrawPileCount int                         `json:"draw_pile_count"`
	Hand          []string                    `json:"hand"`
	OpponentCount int                         `json:"opponent_count"`
	Melds         map[string][]string         `json:"melds"`
	Combinations  map[string][]CombinationDTO `json:"combinations"`
	MeneScores    map[string]int              `json:"mene_scores"`
	Trick         TrickDTO                    `json:"trick"`
	DrawQueue     []string                    `json:"draw_queue"`
	CurrentTurn   string                      `json:"current_turn"`
	CanMeld       string                      `json:"can_meld"`
	CanExchange   bool                        `json:"can_exchange"`
	WinnerUID     string                      `json:"winner_uid,omitempty"`
	Version       uint64                      `json:"version"`
}

// MeneStartedPayload announces a fresh deal; the hand is the
// recipient's own.
type MeneStartedPayload struct {
	MeneIndex   int      `json:"mene_index"`
	FirstPlayer string   `json:"first_player"`
	TrumpCard   string   `json:"trump_card"`
	TrumpSuit   string   `json:"trump_suit"`
	Hand        []string `json:"hand"`
	Version     uint64   `json:"version"`
}

// CardPlayedPayload announces a played card.
type CardPlayedPayload struct {
	PlayerID    string `json:"player_id"`
	Card        string `json:"card"`
	CurrentTurn string `json:"current_turn"`
	Version     uint64 `json:"version"`
}

// TrickResolvedPayload announces the settled trick.
type TrickResolvedPayload struct {
	Cards     []string `json:"cards"`
	Players   []string `json:"players"`
	WinnerUID string   `json:"winner_uid"`
	Points    int      `json:"points"`
	DrawQueue []string `json:"draw_queue"`
	Version   uint64   `json:"version"`
}

// MeldOptionsPayload lists the combinations the recipient may declare.
type MeldOptionsPayload struct {
	Options []CombinationDTO `json:"options"`
}

// MeldDeclaredPayload announces a scored combination.
type MeldDeclaredPayload struct {
	PlayerID    string         `json:"player_id"`
	Combination CombinationDTO `json:"combination"`
	Version     uint64         `json:"version"`
}

// CardDrawnPayload announces a draw. The card itself goes only to the
// drawer; others receive the pile count.
type CardDrawnPayload struct {
	PlayerID      string `json:"player_id"`
	Card          string `json:"card,omitempty"`
	DrawPileCount int    `json:"draw_pile_count"`
	Phase         string `json:"phase"`
	Version       uint64 `json:"version"`
}

// TrumpExchangedPayload announces the 7-for-indicator swap.
type TrumpExchangedPayload struct {
	PlayerID     string `json:"player_id"`
	NewTrumpCard string `json:"new_trump_card"`
	OldTrumpCard string `json:"old_trump_card"`
	Version      uint64 `json:"version"`
}

// MeneEndedPayload announces scores at the end of a mène.
type MeneEndedPayload struct {
	MeneIndex  int            `json:"mene_index"`
	MeneScores map[string]int `json:"mene_scores"`
	Scores     map[string]int `json:"scores"`
	Version    uint64         `json:"version"`
}

// GameOverPayload announces the final result.
type GameOverPayload struct {
	WinnerUID string         `json:"winner_uid"`
	Scores    map[string]int `json:"scores"`
}

// StatsResultPayload returns a player's record.
type StatsResultPayload struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	TotalGames    int     `json:"total_games"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"`
	Score         int     `json:"score"`
	BestGameScore int     `json:"best_game_score"`
	MaxWinStreak  int     `json:"max_win_streak"`
	Rank          int64   `json:"rank"`
}

// LeaderboardEntry is one row of the leaderboard.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardResultPayload returns the top players.
type LeaderboardResultPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// OnlineCountPayload reports the number of connected clients.
type OnlineCountPayload struct {
	Count int `json:"count"`
}

// ErrorPayload reports a typed failure.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
