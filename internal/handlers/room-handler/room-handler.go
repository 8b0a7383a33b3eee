package room_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sidhu69/live-room-chat/internal/dtos/room_dto"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/internal/handlers"
	"github.com/sidhu69/live-room-chat/internal/middleware"
	"github.com/sidhu69/live-room-chat/internal/notifier"
	room_service "github.com/sidhu69/live-room-chat/internal/use-case/room-case"
	"github.com/sidhu69/live-room-chat/state"
)

type RoomHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  room_service.RoomServiceContract
}

func NewRoomHandler(state *state.AppState, notify notifier.Notifier) *RoomHandler {
	validate := validator.New()
	validate.RegisterValidation("roomcode", room_dto.RoomCodeValidator)
	return &RoomHandler{
		State:    state,
		Validate: validate,
		Service:  room_service.NewRoomService(state, notify),
	}
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req room_dto.CreateRoomRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.Validation("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.Validation(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, appErr := h.Service.CreateRoom(r.Context(), req, userID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusCreated, handlers.CreateResponse("room created successfully", *resp, requestID(r)))
	return nil
}

func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req room_dto.JoinRoomRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.Validation("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.Validation("Valid 6-digit room code is required", "code")
	}

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, appErr := h.Service.JoinRoom(r.Context(), req.Code, userID)
	if appErr != nil {
		return appErr
	}

	message := "successfully joined room"
	if resp.AlreadyMember {
		message = "already a member of this room"
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(message, *resp, requestID(r)))
	return nil
}

func (h *RoomHandler) LeaveRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req room_dto.LeaveRoomRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.Validation("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.Validation("room_id is required", "room_id")
	}

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.Unauthorized("user id is not found in context")
	}

	if appErr := h.Service.LeaveRoom(r.Context(), req.RoomID, userID); appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("successfully left room", struct{}{}, requestID(r)))
	return nil
}

// CleanupRooms is hit by the scheduler's HTTP trigger; the worker pool runs
// the same service call on its own timer.
func (h *RoomHandler) CleanupRooms(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	resp, appErr := h.Service.CleanupExpiredRooms(r.Context())
	if appErr != nil {
		return appErr
	}

	message := fmt.Sprintf("successfully cleaned up %d empty rooms", resp.CleanedCount)
	if resp.CleanedCount == 0 {
		message = "no empty rooms to clean up"
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(message, *resp, requestID(r)))
	return nil
}

func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	rooms, appErr := h.Service.ListPublicRooms(r.Context())
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("rooms fetched successfully", rooms, requestID(r)))
	return nil
}

func (h *RoomHandler) SendMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req room_dto.SendMessageRequest
	defer r.Body.Close()

	roomID := chi.URLParam(r, "roomId")

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.Validation("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.Validation(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, appErr := h.Service.SendMessage(r.Context(), roomID, userID, req.Content)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusCreated, handlers.CreateResponse("message sent successfully", *resp, requestID(r)))
	return nil
}

func (h *RoomHandler) GetMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID := chi.URLParam(r, "roomId")

	req := room_dto.GetMessagesRequest{}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return app_error.Validation("limit must be an integer", "limit")
		}
		req.Limit = limit
	}
	if v := r.URL.Query().Get("before_id"); v != "" {
		req.BeforeID = &v
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.Validation(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, appErr := h.Service.GetMessages(r.Context(), req, roomID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("messages fetch successfully", *resp, requestID(r)))
	return nil
}

func (h *RoomHandler) Ranking(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return app_error.Validation("limit must be between 1 and 100", "limit")
		}
		limit = n
	}

	resp, appErr := h.Service.Ranking(r.Context(), limit)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("ranking fetched successfully", resp, requestID(r)))
	return nil
}

func requestID(r *http.Request) string {
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		return "unknown"
	}
	return reqID
}
