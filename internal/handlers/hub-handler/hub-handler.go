package hub_handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/internal/handlers"
	"github.com/sidhu69/live-room-chat/internal/middleware"
	"github.com/sidhu69/live-room-chat/internal/websocket"
)

type HubHandler struct {
	Hub *websocket.Hub
}

func NewHubHandler(hub *websocket.Hub) *HubHandler {
	return &HubHandler{
		Hub: hub,
	}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "live-room-chat",
	})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := h.Hub.GetHubStats()
	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("get websocket stats", stats, requestID(r)))
	return nil
}

func (h *HubHandler) HandleGetRoomStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID := chi.URLParam(r, "roomId")
	stats := h.Hub.GetRoomStats(roomID)
	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("get websocket room stats", stats, requestID(r)))
	return nil
}

func (h *HubHandler) HandleGetRoomClients(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID := chi.URLParam(r, "roomId")
	clients := h.Hub.GetRoomClients(roomID)

	type ClientInfo struct {
		ID          string    `json:"id"`
		UserID      string    `json:"user_id"`
		ConnectedAt time.Time `json:"connected_at"`
		LastSeen    time.Time `json:"last_seen"`
	}

	var clientList []ClientInfo
	for _, client := range clients {
		clientList = append(clientList, ClientInfo{
			ID:          client.ID,
			UserID:      client.UserID,
			ConnectedAt: client.ConnectedAt,
			LastSeen:    client.GetLastSeen(),
		})
	}

	resp := map[string]any{
		"room_id": roomID,
		"count":   len(clientList),
		"clients": clientList,
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("successfully get room clients", resp, requestID(r)))
	return nil
}

func (h *HubHandler) HandleGetUserStatus(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID := chi.URLParam(r, "userId")
	roomID := r.URL.Query().Get("roomId")

	var isOnline bool
	var activeClients int

	if roomID != "" {
		isOnline = h.Hub.IsUserOnlineInRoom(roomID, userID)
	} else {
		clients := h.Hub.GetUserClients(userID)
		activeClients = len(clients)
		isOnline = activeClients > 0
	}

	resp := map[string]any{
		"user_id":        userID,
		"online":         isOnline,
		"active_clients": activeClients,
		"room_id":        roomID,
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("successfully get user status", resp, requestID(r)))
	return nil
}

func requestID(r *http.Request) string {
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		return "unknown"
	}
	return reqID
}
