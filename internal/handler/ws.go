package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"backoffice/internal/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the admin panel is served from a different origin than the API
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

type wsFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// EventsHandler upgrades the connection and re-broadcasts hub events to the
// client, one JSON frame per event. The subscription is released when the
// client disconnects.
func EventsHandler(hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		sub := hub.Subscribe(events.EventNewOrder)
		defer sub.Close()

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			// drain control frames; any read error means the peer is gone
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case payload, ok := <-sub.C:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := conn.WriteJSON(wsFrame{Event: events.EventNewOrder, Data: payload}); err != nil {
					slog.Debug("websocket write failed", "error", err)
					return
				}
			case <-closed:
				return
			}
		}
	}
}
