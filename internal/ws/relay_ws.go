package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"presentation-service/internal/observability"
	"presentation-service/internal/rabbitmq"
)

// RelayWebSocketHandler upgrades HTTP requests to relay connections.
type RelayWebSocketHandler struct {
	hub       *Hub
	relay     *Relay
	publisher rabbitmq.Publisher
}

// NewRelayWebSocketHandler constructs a RelayWebSocketHandler.
func NewRelayWebSocketHandler(hub *Hub, relay *Relay, publisher rabbitmq.Publisher) *RelayWebSocketHandler {
	return &RelayWebSocketHandler{hub: hub, relay: relay, publisher: publisher}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection, registers the client and runs its read
// loop. Each connection's events are handled in arrival order to completion;
// connections interleave freely.
func (h *RelayWebSocketHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("presentation-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      newConnID(),
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	client := NewClient(conn, info)
	h.hub.Register(client)

	observability.IncWSActive()
	h.publishLifecycle(info, "ws_connect", "")

	go h.readLoop(client, conn)
}

// readLoop drives one connection until it drops. The hub cleanup is
// guaranteed to run whatever ended the connection.
func (h *RelayWebSocketHandler) readLoop(client *Client, conn *websocket.Conn) {
	// Request-scoped context dies with the handshake; relay work outlives it.
	ctx := context.Background()

	var closeReason string
	defer func() {
		h.hub.Unregister(client)
		observability.DecWSActive()
		h.publishLifecycle(client.Info(), "ws_disconnect", closeReason)
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			closeReason = err.Error()
			return
		}
		h.relay.HandleEvent(ctx, client, raw)
	}
}

func (h *RelayWebSocketHandler) publishLifecycle(info ConnInfo, event, reason string) {
	if h.publisher == nil {
		return
	}

	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"event":       event,
			"conn_id":     info.ConnID,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      reason,
		},
		"identity": map[string]interface{}{
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}

	err := h.publisher.Publish(context.Background(), "ws_events.presentations", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload:   payload,
	})
	if err != nil {
		observability.IncAMQPPublishError()
	}
}
