package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/sidhu69/live-room-chat/internal/handlers"
	hub_handler "github.com/sidhu69/live-room-chat/internal/handlers/hub-handler"
	"github.com/sidhu69/live-room-chat/internal/websocket"
)

func HubRouter(r chi.Router, wsHub *websocket.Hub) {
	hubHandler := hub_handler.NewHubHandler(wsHub)

	r.Route("/api/v1/hub", func(r chi.Router) {
		r.Get("/health", hubHandler.HandleHealth)
		r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetStats))
		r.Get("/rooms/{roomId}/stats", handlers.WrapHandler(hubHandler.HandleGetRoomStats))
		r.Get("/rooms/{roomId}/clients", handlers.WrapHandler(hubHandler.HandleGetRoomClients))
		r.Get("/users/{userId}/status", handlers.WrapHandler(hubHandler.HandleGetUserStatus))
	})
}
