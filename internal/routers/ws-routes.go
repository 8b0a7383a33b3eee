package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sidhu69/live-room-chat/internal/websocket"
	"github.com/sidhu69/live-room-chat/state"
)

func WsRouter(r chi.Router, state *state.AppState, wsHub *websocket.Hub) {
	authenticate := websocket.JWTWebSocketAuth(state.JwtSecret.Public)

	r.Get("/ws/rooms/{roomId}", func(w http.ResponseWriter, req *http.Request) {
		roomID := chi.URLParam(req, "roomId")
		if roomID == "" {
			http.Error(w, "roomId is required", http.StatusBadRequest)
			return
		}

		userID, err := authenticate(req)
		if err != nil {
			log.Warn().Err(err).Str("roomID", roomID).Msg("ws: handshake rejected")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		wsHub.HandleWS(w, req, userID, roomID)
	})
}
