package ws

import (
	"log"
	"sync"
)

// Hub is the connection registry and broadcast router for the relay. It
// tracks which client has joined which presentation channel and fans events
// out to them. Channels exist implicitly while at least one client has
// joined; nothing about them is persisted.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
	joined  map[*Client]map[string]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
		joined:  make(map[*Client]map[string]struct{}),
	}
}

// Register adds a connected client. Global broadcasts reach every registered
// client whether or not it joined a channel.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// Join adds the client to a presentation channel. Joining twice is a no-op;
// unknown channels come into existence on first join.
func (h *Hub) Join(c *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][c] = struct{}{}

	if _, ok := h.joined[c]; !ok {
		h.joined[c] = make(map[string]struct{})
	}
	h.joined[c][roomID] = struct{}{}
}

// Unregister removes a client and every channel membership it holds. Runs on
// every disconnect path.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, c)
	for roomID := range h.joined[c] {
		delete(h.rooms[roomID], c)
		if len(h.rooms[roomID]) == 0 {
			delete(h.rooms, roomID)
		}
	}
	delete(h.joined, c)
}

// ConnectionsOf returns a snapshot of the clients currently joined to a
// channel.
func (h *Hub) ConnectionsOf(roomID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*Client, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		clients = append(clients, c)
	}
	return clients
}

// Broadcast delivers one event to every client joined to the channel at call
// time. Delivery is fire-and-forget: a failed write drops that connection
// and does not affect the others.
func (h *Hub) Broadcast(roomID, event string, data any) {
	for _, c := range h.ConnectionsOf(roomID) {
		h.send(c, event, data)
	}
}

// BroadcastGlobal delivers one event to every connected client regardless of
// channel membership.
func (h *Hub) BroadcastGlobal(event string, data any) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.send(c, event, data)
	}
}

func (h *Hub) send(c *Client, event string, data any) {
	if err := c.Send(event, data); err != nil {
		log.Printf("websocket write error: %v", err)
		_ = c.Close()
		h.Unregister(c)
	}
}
