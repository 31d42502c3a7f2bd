package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
	"github.com/palemoky/bezigue/internal/testutil"
)

func TestHandleGetStats_NoGamesYet(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(c, codec.MustNewMessage(protocol.MsgGetStats, nil))

	results := c.MessagesOfType(protocol.MsgStatsResult)
	require.Len(t, results, 1)

	payload, err := codec.ParsePayload[protocol.StatsResultPayload](results[0])
	require.NoError(t, err)
	assert.Equal(t, "p1", payload.PlayerID)
	assert.Equal(t, 0, payload.TotalGames)
	assert.Equal(t, int64(-1), payload.Rank)
}

func TestHandleGetStats_WithRecord(t *testing.T) {
	t.Parallel()
	h, _, lb := newTestHandler(t)

	require.NoError(t, lb.RecordGameResult(context.Background(), "p1", "Alice", true, 2080))
	require.NoError(t, lb.RecordGameResult(context.Background(), "p1", "Alice", false, 1700))

	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(c, codec.MustNewMessage(protocol.MsgGetStats, nil))

	results := c.MessagesOfType(protocol.MsgStatsResult)
	require.Len(t, results, 1)

	payload, err := codec.ParsePayload[protocol.StatsResultPayload](results[0])
	require.NoError(t, err)
	assert.Equal(t, 2, payload.TotalGames)
	assert.Equal(t, 1, payload.Wins)
	assert.Equal(t, 1, payload.Losses)
	assert.InDelta(t, 50.0, payload.WinRate, 0.01)
	assert.Equal(t, 2080, payload.BestGameScore)
	assert.Equal(t, int64(1), payload.Rank)
}

func TestHandleGetLeaderboard(t *testing.T) {
	t.Parallel()
	h, _, lb := newTestHandler(t)

	ctx := context.Background()
	require.NoError(t, lb.RecordGameResult(ctx, "p1", "Alice", true, 2100))
	require.NoError(t, lb.RecordGameResult(ctx, "p1", "Alice", true, 2000))
	require.NoError(t, lb.RecordGameResult(ctx, "p2", "Bob", true, 2050))

	c := &testutil.SimpleClient{ID: "p3", Name: "Carol"}
	h.Handle(c, codec.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{
		Limit: 1,
	}))

	results := c.MessagesOfType(protocol.MsgLeaderboardResult)
	require.Len(t, results, 1)

	payload, err := codec.ParsePayload[protocol.LeaderboardResultPayload](results[0])
	require.NoError(t, err)
	require.Len(t, payload.Entries, 1)
	assert.Equal(t, "p1", payload.Entries[0].PlayerID)
	assert.Equal(t, 1, payload.Entries[0].Rank)

	// No payload falls back to the default limit.
	h.Handle(c, codec.MustNewMessage(protocol.MsgGetLeaderboard, nil))
	results = c.MessagesOfType(protocol.MsgLeaderboardResult)
	require.Len(t, results, 2)

	payload, err = codec.ParsePayload[protocol.LeaderboardResultPayload](results[1])
	require.NoError(t, err)
	assert.Len(t, payload.Entries, 2)
}

func TestHandleGetOnlineCount(t *testing.T) {
	t.Parallel()
	h, srv, _ := newTestHandler(t)
	srv.On("GetOnlineCount").Return(3)

	c := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(c, codec.MustNewMessage(protocol.MsgGetOnlineCount, nil))

	counts := c.MessagesOfType(protocol.MsgOnlineCount)
	require.Len(t, counts, 1)

	payload, err := codec.ParsePayload[protocol.OnlineCountPayload](counts[0])
	require.NoError(t, err)
	assert.Equal(t, 3, payload.Count)
	srv.AssertExpectations(t)
}
