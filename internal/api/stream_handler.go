package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// upgrader accepts the same origins as the cors middleware
func (h *Handler) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}
}

// StreamView handles GET /api/ws. The current snapshot is sent on connect and
// after every view change until the client disconnects.
func (h *Handler) StreamView(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader().Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.service.Subscribe()
	defer unsubscribe()

	h.logger.Debug("view stream client connected")

	// Wait for client disconnect
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	initial := h.service.Snapshot()
	if err := conn.WriteJSON(initial); err != nil {
		return
	}
	sent := initial.Version

	for {
		select {
		case <-closed:
			h.logger.Debug("view stream client disconnected")
			return
		case snapshot := <-updates:
			// queued before the connect snapshot was taken
			if snapshot.Version <= sent {
				continue
			}
			sent = snapshot.Version
			if err := conn.WriteJSON(snapshot); err != nil {
				h.logger.Debug("view stream write failed", slog.String("error", err.Error()))
				return
			}
		}
	}
}
