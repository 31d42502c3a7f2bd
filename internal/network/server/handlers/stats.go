package handlers

import (
	"context"

	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
	"github.com/palemoky/bezigue/internal/types"
)

const defaultLeaderboardLimit = 10

func (h *Handler) handleGetStats(client types.ClientInterface) {
	ctx := context.Background()
	stats, err := h.leaderboard.GetPlayerStats(ctx, client.GetID())
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "failed to load stats"))
		return
	}

	if stats == nil {
		// no games yet
		client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
			PlayerID:   client.GetID(),
			PlayerName: client.GetName(),
			Rank:       -1,
		}))
		return
	}

	rank, _ := h.leaderboard.GetPlayerRank(ctx, client.GetID())

	winRate := 0.0
	if stats.TotalGames > 0 {
		winRate = float64(stats.Wins) / float64(stats.TotalGames) * 100
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
		PlayerID:      stats.PlayerID,
		PlayerName:    stats.PlayerName,
		TotalGames:    stats.TotalGames,
		Wins:          stats.Wins,
		Losses:        stats.Losses,
		WinRate:       winRate,
		Score:         stats.Score,
		BestGameScore: stats.BestGameScore,
		MaxWinStreak:  stats.MaxWinStreak,
		Rank:          rank,
	}))
}

func (h *Handler) handleGetOnlineCount(client types.ClientInterface) {
	client.SendMessage(codec.MustNewMessage(protocol.MsgOnlineCount, protocol.OnlineCountPayload{
		Count: h.server.GetOnlineCount(),
	}))
}

func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	limit := defaultLeaderboardLimit
	if payload, err := codec.ParsePayload[protocol.GetLeaderboardPayload](msg); err == nil && payload.Limit > 0 {
		limit = payload.Limit
	}

	entries, err := h.leaderboard.GetLeaderboard(context.Background(), limit)
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "failed to load leaderboard"))
		return
	}

	rows := make([]protocol.LeaderboardEntry, len(entries))
	for i, e := range entries {
		rows[i] = protocol.LeaderboardEntry{
			Rank:       e.Rank,
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			Score:      e.Score,
			Wins:       e.Wins,
			WinRate:    e.WinRate,
		}
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Entries: rows,
	}))
}
