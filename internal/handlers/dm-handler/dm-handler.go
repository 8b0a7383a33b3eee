package dm_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sidhu69/live-room-chat/internal/dtos/dm_dto"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/internal/handlers"
	"github.com/sidhu69/live-room-chat/internal/middleware"
	"github.com/sidhu69/live-room-chat/internal/notifier"
	dm_service "github.com/sidhu69/live-room-chat/internal/use-case/dm-case"
	"github.com/sidhu69/live-room-chat/state"
)

type DMHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  dm_service.DMServiceContract
}

func NewDMHandler(state *state.AppState, notify notifier.Notifier) *DMHandler {
	return &DMHandler{
		State:    state,
		Validate: validator.New(),
		Service:  dm_service.NewDMService(state, notify),
	}
}

func (h *DMHandler) SendFriendRequest(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req dm_dto.SendFriendRequestRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.Validation("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.Validation("user_id is required", "user_id")
	}

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, appErr := h.Service.SendFriendRequest(r.Context(), userID, req.UserID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusCreated, handlers.CreateResponse("friend request sent", *resp, requestID(r)))
	return nil
}

func (h *DMHandler) RespondToRequest(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req dm_dto.RespondContactRequest
	defer r.Body.Close()

	contactID, err := strconv.ParseInt(chi.URLParam(r, "contactId"), 10, 64)
	if err != nil {
		return app_error.Validation("contact_id must be an integer", "contact_id")
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.Validation("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.Validation("status must be accepted or rejected", "status")
	}

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, appErr := h.Service.RespondToRequest(r.Context(), userID, contactID, req.Status)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(fmt.Sprintf("friend request %s", req.Status), *resp, requestID(r)))
	return nil
}

func (h *DMHandler) ListContacts(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, appErr := h.Service.ListContacts(r.Context(), userID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("contacts fetched successfully", resp, requestID(r)))
	return nil
}

func (h *DMHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, appErr := h.Service.ListPendingRequests(r.Context(), userID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("pending requests fetched successfully", resp, requestID(r)))
	return nil
}

func (h *DMHandler) SendDirectMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req dm_dto.SendDirectMessageRequest
	defer r.Body.Close()

	recipientID := chi.URLParam(r, "userId")

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

	resp, appErr := h.Service.SendDirectMessage(r.Context(), userID, recipientID, req.Content)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusCreated, handlers.CreateResponse("message sent successfully", *resp, requestID(r)))
	return nil
}

func (h *DMHandler) GetConversation(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	otherID := chi.URLParam(r, "userId")

	req := dm_dto.GetDirectMessagesRequest{}
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

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, appErr := h.Service.GetConversation(r.Context(), userID, otherID, req)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("messages fetch successfully", *resp, requestID(r)))
	return nil
}

func requestID(r *http.Request) string {
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		return "unknown"
	}
	return reqID
}
