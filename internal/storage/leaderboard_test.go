package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeaderboardManager(t *testing.T) (*LeaderboardManager, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return NewLeaderboardManager(client), mr
}

func TestLeaderboard_RecordGameResult_NewPlayer(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	err := lm.RecordGameResult(ctx, "p1", "Alice", true, 2140)
	assert.NoError(t, err)

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, "p1", stats.PlayerID)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 0, stats.Losses)
	assert.Equal(t, WinPoints, stats.Score)
	assert.Equal(t, 2140, stats.BestGameScore)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.MaxWinStreak)
}

func TestLeaderboard_RecordGameResult_Update(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	// Win then lose: 20 - 10 = 10 rating points.
	err := lm.RecordGameResult(ctx, "p1", "Alice", true, 2050)
	assert.NoError(t, err)
	err = lm.RecordGameResult(ctx, "p1", "Alice", false, 1820)
	assert.NoError(t, err)

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, 2, stats.TotalGames)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 10, stats.Score)
	assert.Equal(t, -1, stats.CurrentStreak)
	assert.Equal(t, 2050, stats.BestGameScore, "a losing game never lowers the best score")
}

func TestLeaderboard_ScoreNeverNegative(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	err := lm.RecordGameResult(ctx, "p1", "Alice", false, 1500)
	assert.NoError(t, err)

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Score)
	assert.Equal(t, -1, stats.CurrentStreak)
}

func TestLeaderboard_StreakBonus(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	// Three straight wins: 20 + 20 + (20 + 5 streak bonus) = 65.
	for range 3 {
		err := lm.RecordGameResult(ctx, "p1", "Alice", true, 2000)
		assert.NoError(t, err)
	}

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 65, stats.Score)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.MaxWinStreak)
}

func TestLeaderboard_GetLeaderboard(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	// p1 two wins (40+), p2 one win (20).
	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Alice", true, 2100))
	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Alice", true, 2030))
	require.NoError(t, lm.RecordGameResult(ctx, "p2", "Bob", true, 2010))

	entries, err := lm.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, 40, entries[0].Score)
	assert.InDelta(t, 100.0, entries[0].WinRate, 0.01)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "p2", entries[1].PlayerID)
	assert.Equal(t, 20, entries[1].Score)
}

func TestLeaderboard_GetPlayerRank(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Alice", true, 2100))
	require.NoError(t, lm.RecordGameResult(ctx, "p2", "Bob", false, 1400))

	rank, err := lm.GetPlayerRank(ctx, "p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rank)

	rank, err = lm.GetPlayerRank(ctx, "p2")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), rank)

	rank, err = lm.GetPlayerRank(ctx, "nobody")
	assert.NoError(t, err)
	assert.Equal(t, int64(-1), rank)
}

func TestLeaderboard_GetPlayerStats_Unknown(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()

	stats, err := lm.GetPlayerStats(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, stats)
}

func TestSortByScore(t *testing.T) {
	t.Parallel()

	entries := []LeaderboardEntry{
		{PlayerID: "p2", Score: 20},
		{PlayerID: "p1", Score: 65},
		{PlayerID: "p3", Score: 40},
	}
	SortByScore(entries)

	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, "p3", entries[1].PlayerID)
	assert.Equal(t, "p2", entries[2].PlayerID)
}
