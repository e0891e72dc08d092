package http

import (
	"log"
	"net/http"
	"time"

	"catalogapi/internal/pubsub"
	"catalogapi/internal/usecase"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// eventFrame is the wire shape of one pushed notification.
type eventFrame struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	Payload   any    `json:"payload"`
}

// SubscriptionHandler streams catalog notifications to websocket clients.
// Each connection gets its own bus subscription for the lifetime of the
// socket; there is no backlog for late subscribers.
type SubscriptionHandler struct {
	broker   *pubsub.Broker
	upgrader websocket.Upgrader
}

func NewSubscriptionHandler(broker *pubsub.Broker) *SubscriptionHandler {
	return &SubscriptionHandler{
		broker: broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// BookAdded upgrades the connection and pushes one frame per successful
// book creation until the client goes away.
func (h *SubscriptionHandler) BookAdded(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("subscription upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub := h.broker.Subscribe(usecase.TopicBookAdded)
	defer sub.Unsubscribe()

	// Drain the read side so client close frames are seen.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.C():
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			frame := eventFrame{
				Type:      event.Topic,
				Timestamp: event.Timestamp.UnixMilli(),
				Payload:   event.Payload,
			}
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
