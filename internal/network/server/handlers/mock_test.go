package handlers

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/bezigue/internal/game/room"
	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
	"github.com/palemoky/bezigue/internal/storage"
	"github.com/palemoky/bezigue/internal/types"
)

// --- MockServer ---

type MockServer struct {
	mock.Mock
}

func (m *MockServer) GetOnlineCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockServer) GetClientByID(id string) types.ClientInterface {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(types.ClientInterface)
}

func (m *MockServer) RegisterClient(id string, client types.ClientInterface) {
	m.Called(id, client)
}

func (m *MockServer) UnregisterClient(id string) {
	m.Called(id)
}

// --- Helpers ---

func newTestHandler(t *testing.T) (*Handler, *MockServer, *storage.LeaderboardManager) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := storage.NewRedisStore(client)
	lb := storage.NewLeaderboardManager(client)
	rm := room.NewRoomManager(store, lb, 30*time.Minute)

	srv := &MockServer{}
	return NewHandler(srv, rm, lb, 2000), srv, lb
}

// errorCode unpacks the code of an error message.
func errorCode(t *testing.T, msg *protocol.Message) int {
	t.Helper()
	require.Equal(t, protocol.MsgError, msg.Type)
	payload, err := codec.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	return payload.Code
}
