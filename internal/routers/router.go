package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sidhu69/live-room-chat/internal/middleware"
	"github.com/sidhu69/live-room-chat/internal/notifier"
	"github.com/sidhu69/live-room-chat/internal/websocket"
	"github.com/sidhu69/live-room-chat/state"
)

func NewRouter(state *state.AppState, hub *websocket.Hub, notify notifier.Notifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	UserRouter(r, state)
	RoomRouter(r, state, notify)
	DmRouter(r, state, notify)
	HubRouter(r, hub)
	WsRouter(r, state, hub)

	return r
}
