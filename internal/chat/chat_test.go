package chat

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

func dialChat(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}

func sendEvent(t *testing.T, conn *websocket.Conn, ev Event) {
	t.Helper()

	payload, err := json.Marshal(ev)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n },
		2*time.Second, 10*time.Millisecond)
}

func TestLoginAnnouncesToOthersOnly(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(NewChatHandler(hub).Serve))
	defer server.Close()

	first := dialChat(t, server)
	second := dialChat(t, server)
	waitForClients(t, hub, 2)

	sendEvent(t, first, Event{Event: EventLogin, Usuario: "ana"})

	// The other client hears about the join.
	ev := readEvent(t, second)
	assert.Equal(t, EventUserJoined, ev.Event)
	assert.Equal(t, "ana", ev.Usuario)

	// The joining client gets nothing back for its own login.
	require.NoError(t, first.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := first.ReadMessage()
	assert.Error(t, err)
}

func TestMensajeReachesEveryoneIncludingSender(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(NewChatHandler(hub).Serve))
	defer server.Close()

	first := dialChat(t, server)
	second := dialChat(t, server)
	waitForClients(t, hub, 2)

	sendEvent(t, first, Event{Event: EventMensaje, Usuario: "ana", Texto: "hola a todos"})

	for _, conn := range []*websocket.Conn{first, second} {
		ev := readEvent(t, conn)
		assert.Equal(t, EventMensaje, ev.Event)
		assert.Equal(t, "ana", ev.Usuario)
		assert.Equal(t, "hola a todos", ev.Texto)
	}
}

func TestDisconnectRemovesClient(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(NewChatHandler(hub).Serve))
	defer server.Close()

	conn := dialChat(t, server)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestUnknownEventIsIgnored(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(NewChatHandler(hub).Serve))
	defer server.Close()

	first := dialChat(t, server)
	second := dialChat(t, server)
	waitForClients(t, hub, 2)

	sendEvent(t, first, Event{Event: "typing", Usuario: "ana"})
	sendEvent(t, first, Event{Event: EventMensaje, Usuario: "ana", Texto: "sigo aquí"})

	// Only the mensaje comes through; the unknown event is dropped.
	ev := readEvent(t, second)
	assert.Equal(t, EventMensaje, ev.Event)
	assert.Equal(t, "sigo aquí", ev.Texto)
}
