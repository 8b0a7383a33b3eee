package websocket

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the mobile clients pin their hosts
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and registers the connection with the hub.
// Pass roomID "lobby" to receive room table events only.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request, userID, roomID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}

	client := newClient(h, conn, uuid.New().String(), userID, roomID)
	h.Register(roomID, client)
}
