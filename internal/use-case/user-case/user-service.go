package user_service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sidhu69/live-room-chat/internal/dtos/user_dto"
	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	user_repo "github.com/sidhu69/live-room-chat/internal/repo/user"
	"github.com/sidhu69/live-room-chat/internal/utils"
	"github.com/sidhu69/live-room-chat/state"
)

const refreshTTL = 7 * 24 * time.Hour

type UserService struct {
	AppState *state.AppState
	UserRepo user_repo.UserRepoContract
}

func NewUserService(appState *state.AppState) UserServiceContract {
	return &UserService{
		AppState: appState,
		UserRepo: user_repo.NewUserRepo(appState),
	}
}

func (u *UserService) Register(ctx context.Context, req user_dto.CreateUserRequest) (*user_dto.UserResponse, *app_error.AppError) {
	filter := entity.UserFilter{
		Email:    &req.Email,
		Username: &req.Username,
	}
	count, appErr := u.UserRepo.CountUser(ctx, filter)
	if appErr != nil {
		return nil, appErr
	}
	if count > 0 {
		return nil, app_error.NewAppError(http.StatusConflict, "username or email already registered", "credential-registered")
	}

	hashed, hashErr := utils.GenerateHash(req.Password)
	if hashErr != nil {
		return nil, app_error.Dependency(hashErr.Error(), "password")
	}

	user := entity.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if appErr := u.UserRepo.SaveUser(ctx, user); appErr != nil {
		return nil, appErr
	}

	return &user_dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login verifies credentials and issues an access token plus a refresh token.
// The refresh token (second return value) goes into an http-only cookie; its
// session is tracked in Redis so it can be revoked.
func (u *UserService) Login(ctx context.Context, req user_dto.LoginRequest) (*user_dto.LoginResponse, string, *app_error.AppError) {
	user, appErr := u.UserRepo.FindByEmail(ctx, req.Email)
	if appErr != nil {
		if appErr.Code == http.StatusNotFound {
			return nil, "", app_error.Unauthorized("invalid email or password")
		}
		return nil, "", appErr
	}

	ok, err := utils.VerifyHash(user.PasswordHash, req.Password)
	if err != nil {
		return nil, "", app_error.Dependency("failed to verify password", "password")
	}
	if !ok {
		return nil, "", app_error.Unauthorized("invalid email or password")
	}

	access, refresh, jti, err := utils.IssueNewTokens(user.ID, user.Username, u.AppState.JwtSecret.Private)
	if err != nil {
		return nil, "", app_error.Dependency("failed to issue tokens", "jwt")
	}

	sessionKey := fmt.Sprintf("refresh:%s:%s", user.ID, jti)
	session := map[string]any{
		"user_id":   user.ID,
		"jti":       jti,
		"issued_at": time.Now().Unix(),
		"status":    "valid",
	}
	if err := utils.SetCacheData(ctx, u.AppState.Redis, sessionKey, &session, refreshTTL); err != nil {
		return nil, "", app_error.Dependency("failed to store refresh session", "redis")
	}

	return &user_dto.LoginResponse{
		AccessToken: access,
		User: user_dto.UserResponse{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			AvatarURL:   user.AvatarURL,
			CreatedAt:   user.CreatedAt,
		},
	}, refresh, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. Sessions
// rotate on every exchange: the presented token's Redis session is deleted
// and a new one stored, so a replayed token is rejected.
func (u *UserService) Refresh(ctx context.Context, refreshToken string) (*user_dto.LoginResponse, string, *app_error.AppError) {
	claims, err := utils.ParseAndVerifySign(refreshToken, u.AppState.JwtSecret.Public)
	if err != nil || claims.Jti == nil {
		return nil, "", app_error.Unauthorized("invalid refresh token")
	}

	sessionKey := fmt.Sprintf("refresh:%s:%s", claims.Sub, *claims.Jti)
	session, cacheErr := utils.GetCacheData[map[string]any](ctx, u.AppState.Redis, sessionKey)
	if cacheErr != nil {
		return nil, "", app_error.Dependency("failed to load refresh session", "redis")
	}
	if session == nil {
		return nil, "", app_error.Unauthorized("refresh session expired or revoked")
	}

	user, appErr := u.UserRepo.FindByID(ctx, claims.Sub)
	if appErr != nil {
		if appErr.Code == http.StatusNotFound {
			return nil, "", app_error.Unauthorized("invalid refresh token")
		}
		return nil, "", appErr
	}

	access, refresh, jti, tokenErr := utils.IssueNewTokens(user.ID, user.Username, u.AppState.JwtSecret.Private)
	if tokenErr != nil {
		return nil, "", app_error.Dependency("failed to issue tokens", "jwt")
	}

	if err := utils.DeleteCacheData(ctx, u.AppState.Redis, sessionKey); err != nil {
		return nil, "", app_error.Dependency("failed to revoke refresh session", "redis")
	}

	newKey := fmt.Sprintf("refresh:%s:%s", user.ID, jti)
	newSession := map[string]any{
		"user_id":   user.ID,
		"jti":       jti,
		"issued_at": time.Now().Unix(),
		"status":    "valid",
	}
	if err := utils.SetCacheData(ctx, u.AppState.Redis, newKey, &newSession, refreshTTL); err != nil {
		return nil, "", app_error.Dependency("failed to store refresh session", "redis")
	}

	return &user_dto.LoginResponse{
		AccessToken: access,
		User: user_dto.UserResponse{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			AvatarURL:   user.AvatarURL,
			CreatedAt:   user.CreatedAt,
		},
	}, refresh, nil
}

func (u *UserService) GetProfile(ctx context.Context, userID string) (*user_dto.UserResponse, *app_error.AppError) {
	user, appErr := u.UserRepo.FindByID(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	return &user_dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (u *UserService) UpdateProfile(ctx context.Context, userID string, req user_dto.UpdateProfileRequest) (*user_dto.UserResponse, *app_error.AppError) {
	fields := map[string]any{}
	if req.DisplayName != nil {
		fields["display_name"] = *req.DisplayName
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}

	if appErr := u.UserRepo.UpdateProfile(ctx, userID, fields); appErr != nil {
		return nil, appErr
	}

	return u.GetProfile(ctx, userID)
}
