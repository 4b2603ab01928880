package chat

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"kowapp/internal/common/logger"
)

const (
	EventLogin      = "login"
	EventMensaje    = "mensaje"
	EventUserJoined = "usuarioUnido"
)

// Event is the wire envelope for every chat frame, both directions.
type Event struct {
	Event   string `json:"event"`
	Usuario string `json:"usuario,omitempty"`
	Texto   string `json:"texto,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type ChatHandler struct {
	hub *Hub
}

func NewChatHandler(hub *Hub) *ChatHandler {
	return &ChatHandler{hub: hub}
}

// Serve upgrades the connection and relays chat events until the client
// disconnects. There is no auth handshake: whoever connects may claim any
// username in the login event.
func (h *ChatHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("chat_upgrade", "websocket upgrade failed", "", "", err.Error())
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.hub.AddClient(client)

	go h.writeLoop(client)
	h.readLoop(client)
}

func (h *ChatHandler) writeLoop(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

func (h *ChatHandler) readLoop(client *Client) {
	defer func() {
		h.hub.RemoveClient(client.ID)
		logger.Info("chat_disconnect", "client disconnected", "", "")
	}()

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			return
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			logger.Warn("chat_event", "undecodable chat frame", "", "", err.Error())
			continue
		}

		switch ev.Event {
		case EventLogin:
			client.Username = ev.Usuario
			h.announceJoin(client)
		case EventMensaje:
			h.relayMessage(ev)
		default:
			logger.Warn("chat_event", "unknown chat event: "+ev.Event, "", "", "")
		}
	}
}

// announceJoin tells everyone else a user arrived. The joining client does
// not receive its own announcement.
func (h *ChatHandler) announceJoin(client *Client) {
	payload, err := json.Marshal(Event{Event: EventUserJoined, Usuario: client.Username})
	if err != nil {
		return
	}
	h.hub.BroadcastExcept(client.ID, payload)
	logger.Info("chat_login", "user joined chat", "", "")
}

// relayMessage rebroadcasts to every client, the sender included.
func (h *ChatHandler) relayMessage(ev Event) {
	payload, err := json.Marshal(Event{Event: EventMensaje, Usuario: ev.Usuario, Texto: ev.Texto})
	if err != nil {
		return
	}
	h.hub.Broadcast(payload)
}
