package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// conn is the slice of *websocket.Conn the relay needs, so tests can use
// fake connections.
type conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one live participant session on the relay.
type Client struct {
	id   string
	conn conn
	info ConnInfo

	// gorilla allows one concurrent writer per connection; broadcasts from
	// different rooms may race, so writes are serialized here.
	writeMu sync.Mutex
}

// NewClient wraps a connection.
func NewClient(c conn, info ConnInfo) *Client {
	return &Client{id: info.ConnID, conn: c, info: info}
}

// ID returns the connection identifier.
func (c *Client) ID() string {
	return c.id
}

// Info returns the connection metadata captured at handshake time.
func (c *Client) Info() ConnInfo {
	return c.info
}

type outboundEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Send writes one named event to the connection. A nil data marshals to a
// JSON null, which clients read as "operation failed".
func (c *Client) Send(event string, data any) error {
	payload, err := json.Marshal(outboundEvent{Event: event, Data: data})
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
