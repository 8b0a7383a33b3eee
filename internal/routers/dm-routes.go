package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/sidhu69/live-room-chat/internal/handlers"
	dm_handler "github.com/sidhu69/live-room-chat/internal/handlers/dm-handler"
	"github.com/sidhu69/live-room-chat/internal/middleware"
	"github.com/sidhu69/live-room-chat/internal/notifier"
	"github.com/sidhu69/live-room-chat/state"
)

func DmRouter(r chi.Router, state *state.AppState, notify notifier.Notifier) {
	dmHandler := dm_handler.NewDMHandler(state, notify)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(state.JwtSecret.Public))
		protected.Post("/api/v1/contacts", handlers.WrapHandler(dmHandler.SendFriendRequest))
		protected.Get("/api/v1/contacts", handlers.WrapHandler(dmHandler.ListContacts))
		protected.Get("/api/v1/contacts/requests", handlers.WrapHandler(dmHandler.ListPendingRequests))
		protected.Patch("/api/v1/contacts/{contactId}", handlers.WrapHandler(dmHandler.RespondToRequest))
		protected.Post("/api/v1/dm/{userId}/messages", handlers.WrapHandler(dmHandler.SendDirectMessage))
		protected.Get("/api/v1/dm/{userId}/messages", handlers.WrapHandler(dmHandler.GetConversation))
	})
}
