package user_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sidhu69/live-room-chat/internal/dtos/user_dto"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/internal/handlers"
	"github.com/sidhu69/live-room-chat/internal/middleware"
	user_service "github.com/sidhu69/live-room-chat/internal/use-case/user-case"
	"github.com/sidhu69/live-room-chat/state"
)

type UserHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  user_service.UserServiceContract
}

func NewUserHandler(state *state.AppState) *UserHandler {
	return &UserHandler{
		State:    state,
		Validate: validator.New(),
		Service:  user_service.NewUserService(state),
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req user_dto.CreateUserRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.Validation("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.Validation(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, appErr := h.Service.Register(r.Context(), req)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusCreated, handlers.CreateResponse("user registered successfully", *resp, requestID(r)))
	return nil
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req user_dto.LoginRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.Validation("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.Validation(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, refresh, appErr := h.Service.Login(r.Context(), req)
	if appErr != nil {
		return appErr
	}

	setRefreshCookie(w, refresh)

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("login successful", *resp, requestID(r)))
	return nil
}

// Refresh exchanges the refresh_token cookie for a new token pair. The old
// session is revoked by the service, so the cookie must be replaced.
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	cookie, err := r.Cookie("refresh_token")
	if err != nil || cookie.Value == "" {
		return app_error.Unauthorized("missing refresh token")
	}

	resp, refresh, appErr := h.Service.Refresh(r.Context(), cookie.Value)
	if appErr != nil {
		return appErr
	}

	setRefreshCookie(w, refresh)

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("token refreshed successfully", *resp, requestID(r)))
	return nil
}

func setRefreshCookie(w http.ResponseWriter, refresh string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, appErr := h.Service.GetProfile(r.Context(), userID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("profile fetched successfully", *resp, requestID(r)))
	return nil
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req user_dto.UpdateProfileRequest
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

	resp, appErr := h.Service.UpdateProfile(r.Context(), userID, req)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("profile updated successfully", *resp, requestID(r)))
	return nil
}

func requestID(r *http.Request) string {
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		return "unknown"
	}
	return reqID
}
