package ws

import "time"

// ConnInfo captures request metadata for one relay connection, used in
// lifecycle events.
type ConnInfo struct {
	ConnID      string
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}
