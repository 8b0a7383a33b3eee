package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/sidhu69/live-room-chat/internal/handlers"
	room_handler "github.com/sidhu69/live-room-chat/internal/handlers/room-handler"
	"github.com/sidhu69/live-room-chat/internal/middleware"
	"github.com/sidhu69/live-room-chat/internal/notifier"
	"github.com/sidhu69/live-room-chat/state"
)

func RoomRouter(r chi.Router, state *state.AppState, notify notifier.Notifier) {
	roomHandler := room_handler.NewRoomHandler(state, notify)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(state.JwtSecret.Public))
		protected.Post("/api/v1/rooms", handlers.WrapHandler(roomHandler.CreateRoom))
		protected.Get("/api/v1/rooms", handlers.WrapHandler(roomHandler.ListRooms))
		protected.Post("/api/v1/rooms/join", handlers.WrapHandler(roomHandler.JoinRoom))
		protected.Post("/api/v1/rooms/leave", handlers.WrapHandler(roomHandler.LeaveRoom))
		protected.Post("/api/v1/rooms/{roomId}/messages", handlers.WrapHandler(roomHandler.SendMessage))
		protected.Get("/api/v1/rooms/{roomId}/messages", handlers.WrapHandler(roomHandler.GetMessages))
		protected.Get("/api/v1/ranking", handlers.WrapHandler(roomHandler.Ranking))
	})

	// Cleanup runs without auth so the scheduler and ops tooling can hit it;
	// deploys should keep /internal off the public edge.
	r.Post("/api/v1/internal/cleanup-rooms", handlers.WrapHandler(roomHandler.CleanupRooms))
}
