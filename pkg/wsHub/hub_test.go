package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pair returns a server-side Conn and the client end of the same socket.
func pair(t *testing.T, id uuid.UUID) (*Conn, *websocket.Conn) {
	t.Helper()

	serverSide := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		serverSide <- c
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewConn(context.Background(), id, <-serverSide), client
}

func TestConnectionHub_SendAndBroadcast(t *testing.T) {
	hub := NewConnHub("test", logger.Nop())
	a, b := uuid.New(), uuid.New()

	connA, clientA := pair(t, a)
	connB, clientB := pair(t, b)
	require.NoError(t, hub.Add(connA))
	require.NoError(t, hub.Add(connB))
	assert.Equal(t, 2, hub.Len())

	require.NoError(t, hub.SendTo(a, map[string]string{"type": "answer"}))

	var got map[string]string
	_ = clientA.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, clientA.ReadJSON(&got))
	assert.Equal(t, "answer", got["type"])

	assert.Equal(t, 2, hub.Broadcast(map[string]string{"type": "dataset_reloaded"}))
	_ = clientB.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, clientB.ReadJSON(&got))
	assert.Equal(t, "dataset_reloaded", got["type"])

	assert.ErrorIs(t, hub.SendTo(uuid.New(), "x"), ErrConnIsNotFound)
}

func TestConnectionHub_ReplaceAndDelete(t *testing.T) {
	hub := NewConnHub("test", logger.Nop())
	id := uuid.New()

	first, _ := pair(t, id)
	second, _ := pair(t, id)

	require.NoError(t, hub.Add(first))
	require.NoError(t, hub.Add(second))
	assert.Equal(t, 1, hub.Len())

	select {
	case <-first.Done():
	default:
		t.Fatal("replaced connection must be closed")
	}

	// the stale conn no longer owns the slot
	assert.ErrorIs(t, hub.Delete(first), ErrConnIsNotFound)
	assert.Equal(t, 1, hub.Len())

	require.NoError(t, hub.Delete(second))
	assert.Equal(t, 0, hub.Len())
	assert.ErrorIs(t, second.Send("late"), ErrConnClosed)

	assert.ErrorIs(t, hub.Add(nil), ErrEmptyConn)
}
