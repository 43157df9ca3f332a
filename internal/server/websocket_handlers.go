package server

import (
	"log"

	"buddyboost/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedWebsocketHandler handles GET /api/ws/feed, streaming live feed events to
// the connected client. Auth runs in AuthRequired before the upgrade.
func (s *Server) FeedWebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket Feed: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"success":false,"message":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"success":false,"message":"feed unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket Feed: Failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"success":false,"message":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		observability.FeedConnectionsTotal.Inc()
		log.Printf("WebSocket: User %d connected to feed", userID)

		go client.WritePump()
		client.ReadPump()
	})
}
