package chat

import (
	"github.com/gorilla/websocket"
)

// Client is one websocket connection. Username is whatever the client claimed
// in its login event; identities are not verified against the session store.
type Client struct {
	ID       string
	Username string
	Conn     *websocket.Conn
	Send     chan []byte
}
