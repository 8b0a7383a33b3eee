package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsFixture struct {
	hub    *Hub
	server *httptest.Server
}

func setupHub(t *testing.T) *wsFixture {
	t.Helper()

	hub := NewHub()
	t.Cleanup(hub.Close)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user")
		roomID := r.URL.Query().Get("room")
		hub.HandleWS(w, r, userID, roomID)
	}))
	t.Cleanup(server.Close)

	return &wsFixture{hub: hub, server: server}
}

func (f *wsFixture) dial(t *testing.T, userID, roomID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "?user=" + userID + "&room=" + roomID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "Dial should succeed")
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) OutgoingMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg OutgoingMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	f := setupHub(t)

	conn := f.dial(t, "alice", "room-1")

	require.Eventually(t, func() bool {
		return len(f.hub.GetRoomClients("room-1")) == 1
	}, 2*time.Second, 10*time.Millisecond, "Client should appear in the room")

	f.hub.BroadcastToRoom("room-1", OutgoingMessage{
		Type:      TypeNewMessage,
		Data:      map[string]any{"content": "hello"},
		Timestamp: time.Now().Unix(),
	})

	msg := readMessage(t, conn)
	assert.Equal(t, TypeNewMessage, msg.Type)
	assert.Equal(t, "room-1", msg.RoomID, "Broadcast stamps the room id")
}

func TestHub_BroadcastIsScopedToRoom(t *testing.T) {
	f := setupHub(t)

	conn1 := f.dial(t, "alice", "room-1")
	conn2 := f.dial(t, "bob", "room-2")

	require.Eventually(t, func() bool {
		return len(f.hub.GetRoomClients("room-1")) == 1 && len(f.hub.GetRoomClients("room-2")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	f.hub.BroadcastToRoom("room-1", OutgoingMessage{Type: TypeNewMessage, Timestamp: time.Now().Unix()})

	msg := readMessage(t, conn1)
	assert.Equal(t, TypeNewMessage, msg.Type)

	// The other room must stay silent.
	require.NoError(t, conn2.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err := conn2.ReadMessage()
	assert.Error(t, err, "Client in another room should time out with no message")
}

func TestHub_UserStatusOnJoin(t *testing.T) {
	f := setupHub(t)

	connAlice := f.dial(t, "alice", "room-1")
	require.Eventually(t, func() bool {
		return len(f.hub.GetRoomClients("room-1")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	f.dial(t, "bob", "room-1")

	// Alice sees bob come online; bob does not get his own status echo.
	msg := readMessage(t, connAlice)
	assert.Equal(t, TypeUserStatus, msg.Type)

	data, err := json.Marshal(msg.Data)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bob")
	assert.Contains(t, string(data), "online")
}

func TestHub_Unregister(t *testing.T) {
	f := setupHub(t)

	conn := f.dial(t, "alice", "room-1")
	require.Eventually(t, func() bool {
		return f.hub.IsUserOnlineInRoom("room-1", "alice")
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return !f.hub.IsUserOnlineInRoom("room-1", "alice")
	}, 2*time.Second, 10*time.Millisecond, "Closed client should unregister")
}

func TestHub_Stats(t *testing.T) {
	f := setupHub(t)

	f.dial(t, "alice", "room-1")
	f.dial(t, "bob", "room-1")

	require.Eventually(t, func() bool {
		return f.hub.GetHubStats().TotalClients == 2
	}, 2*time.Second, 10*time.Millisecond)

	stats := f.hub.GetHubStats()
	assert.Equal(t, 1, stats.TotalRooms)
	assert.Equal(t, int64(2), stats.TotalConnections)

	roomStats := f.hub.GetRoomStats("room-1")
	assert.Equal(t, true, roomStats["exists"])
	assert.Equal(t, 2, roomStats["unique_users"])

	missing := f.hub.GetRoomStats("nope")
	assert.Equal(t, false, missing["exists"])
}
