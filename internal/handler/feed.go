package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"smartwaste/internal/logger"
	"smartwaste/internal/service/feed"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedWebsocketHandler upgrades dashboard clients and registers them with
// the task feed hub. Clients only receive; incoming messages are drained to
// detect disconnects.
func FeedWebsocketHandler(hub *feed.Hub, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		defer connection.Close()

		hub.Register(connection)
		defer hub.Unregister(connection)

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				logger.Info("Feed client disconnected: %v", err)
				break
			}
		}
	}
}
