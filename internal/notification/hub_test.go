package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialTestConn spins up a websocket server that registers the client
// connection with the hub under the given user id.
func dialTestConn(t *testing.T, hub *Hub, userID uint) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(userID, conn)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	// Registration happens in the server handler; wait for it.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		_, ok := hub.conns[userID]
		hub.mu.RUnlock()
		if ok {
			return client
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("connection for user %d was never registered", userID)
	return nil
}

func readPayload(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var payload map[string]interface{}
	require.NoError(t, conn.ReadJSON(&payload))
	return payload
}

func TestHubSendToUser(t *testing.T) {
	hub := NewHub()
	alice := dialTestConn(t, hub, 1)
	bob := dialTestConn(t, hub, 2)

	hub.SendToUser(1, map[string]string{"type": "ping", "to": "alice"})

	payload := readPayload(t, alice)
	assert.Equal(t, "alice", payload["to"])

	// Bob must not receive Alice's message.
	require.NoError(t, bob.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var stray map[string]interface{}
	assert.Error(t, bob.ReadJSON(&stray))
}

func TestHubSendToUsersDeduplicates(t *testing.T) {
	hub := NewHub()
	conn := dialTestConn(t, hub, 7)

	hub.SendToUsers([]uint{7, 7, 7}, map[string]string{"type": "once"})

	payload := readPayload(t, conn)
	assert.Equal(t, "once", payload["type"])

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var extra map[string]interface{}
	assert.Error(t, conn.ReadJSON(&extra), "duplicate ids must collapse to one send")
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	alice := dialTestConn(t, hub, 1)
	bob := dialTestConn(t, hub, 2)

	hub.Broadcast(map[string]string{"type": "NewEvent"})

	assert.Equal(t, "NewEvent", readPayload(t, alice)["type"])
	assert.Equal(t, "NewEvent", readPayload(t, bob)["type"])
}

func TestHubUnregisterDropsUser(t *testing.T) {
	hub := NewHub()
	dialTestConn(t, hub, 3)
	require.Equal(t, 1, hub.ConnectedUsers())

	hub.mu.Lock()
	var conn *websocket.Conn
	for c := range hub.conns[3] {
		conn = c
	}
	hub.mu.Unlock()

	hub.Unregister(3, conn)
	assert.Zero(t, hub.ConnectedUsers())
}
