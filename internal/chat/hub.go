package chat

import "sync"

// Hub tracks connected chat clients. Slow clients whose send buffer is full
// get dropped rather than blocking the broadcast.
type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

func (h *Hub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

func (h *Hub) RemoveClient(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.Send)
		delete(h.clients, id)
	}
}

// Broadcast sends to every connected client, the sender included.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Send <- message:
		default:
			go h.RemoveClient(client.ID)
		}
	}
}

// BroadcastExcept sends to every connected client but the one named.
func (h *Hub) BroadcastExcept(exceptID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, client := range h.clients {
		if id == exceptID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			go h.RemoveClient(client.ID)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
